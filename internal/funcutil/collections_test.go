// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package funcutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReverse(t *testing.T) {
	tests := []struct {
		name string
		in   []int
		want []int
	}{
		{"empty", nil, nil},
		{"one", []int{1}, []int{1}},
		{"even", []int{1, 2, 3, 4}, []int{4, 3, 2, 1}},
		{"odd", []int{1, 2, 3}, []int{3, 2, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Reverse(tt.in)
			if diff := cmp.Diff(tt.want, tt.in); diff != "" {
				t.Errorf("Reverse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSortedKeys(t *testing.T) {
	got := SortedKeys(map[int]string{3: "c", 1: "a", 2: "b"})
	if diff := cmp.Diff([]int{1, 2, 3}, got); diff != "" {
		t.Errorf("SortedKeys() mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupByKeepsFirstEncounterOrder(t *testing.T) {
	order, groups := GroupBy([]string{"b1", "a1", "b2", "c1", "a2"}, func(s string) byte { return s[0] })
	if diff := cmp.Diff([]byte{'b', 'a', 'c'}, order); diff != "" {
		t.Errorf("key order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a1", "a2"}, groups['a']); diff != "" {
		t.Errorf("group mismatch (-want +got):\n%s", diff)
	}
}

func TestMapContainsExists(t *testing.T) {
	sq := Map([]int{1, 2, 3}, func(x int) int { return x * x })
	if diff := cmp.Diff([]int{1, 4, 9}, sq); diff != "" {
		t.Errorf("Map() mismatch (-want +got):\n%s", diff)
	}
	if !Contains(sq, 4) || Contains(sq, 2) {
		t.Errorf("Contains() wrong")
	}
	if !Exists(sq, func(x int) bool { return x > 8 }) || Exists(sq, func(x int) bool { return x > 9 }) {
		t.Errorf("Exists() wrong")
	}
}
