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

package dataflow

import (
	"strconv"

	"github.com/awslabs/ar-pptflow/analysis/ppt"
)

// Interner hash-conses remap tables: interning two tables with the same slots returns the same *ppt.RemapTable.
// Tables live as long as the interner.
type Interner struct {
	tables map[string]*ppt.RemapTable
}

// NewInterner returns an empty interner
func NewInterner() *Interner {
	return &Interner{tables: map[string]*ppt.RemapTable{}}
}

// Intern returns the canonical table with the given slots. The slots are copied if a new table is created.
func (in *Interner) Intern(slots []int) *ppt.RemapTable {
	key := tableKey(slots)
	if t, ok := in.tables[key]; ok {
		return t
	}
	t := ppt.NewRemapTable(slots)
	in.tables[key] = t
	return t
}

// Len returns the number of distinct tables interned
func (in *Interner) Len() int {
	return len(in.tables)
}

func tableKey(slots []int) string {
	b := make([]byte, 0, 4*len(slots))
	for _, s := range slots {
		b = strconv.AppendInt(b, int64(s), 10)
		b = append(b, ',')
	}
	return string(b)
}
