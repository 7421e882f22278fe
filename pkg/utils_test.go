// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package pkg

import (
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNilOrEmpty(t *testing.T) {
	empty, blank, null, value := "", "  ", "null", "x"

	assert.True(t, IsNilOrEmpty(nil))
	assert.True(t, IsNilOrEmpty(&empty))
	assert.True(t, IsNilOrEmpty(&blank))
	assert.True(t, IsNilOrEmpty(&null))
	assert.False(t, IsNilOrEmpty(&value))
}

func TestValidateServerAddress(t *testing.T) {
	assert.Equal(t, ":4000", ValidateServerAddress(":4000"))
	assert.Equal(t, "0.0.0.0:4000", ValidateServerAddress("0.0.0.0:4000"))
	assert.Equal(t, "", ValidateServerAddress("localhost"))
}

func TestSafeInt64ToInt(t *testing.T) {
	assert.Equal(t, 42, SafeInt64ToInt(42))
	assert.Equal(t, math.MaxInt, SafeInt64ToInt(math.MaxInt64))
}

func TestGetMapNumKinds(t *testing.T) {
	kinds := GetMapNumKinds()

	assert.True(t, kinds[reflect.Int64])
	assert.True(t, kinds[reflect.Float32])
	assert.False(t, kinds[reflect.String])
	assert.False(t, kinds[reflect.Uint])
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ada@example.com", NormalizeEmail("  Ada@Example.COM "))
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"go", "sql"}, SplitCSV(" go, ,sql,"))
	assert.Empty(t, SplitCSV(""))
}
