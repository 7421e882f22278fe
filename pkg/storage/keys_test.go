// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package storage

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	owner := uuid.New()

	key := ObjectKey("resume", owner, ".pdf")
	assert.True(t, strings.HasPrefix(key, "resumes/"+owner.String()+"/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))
	assert.True(t, OwnedBy(key, owner))
	assert.False(t, OwnedBy(key, uuid.New()))

	assert.True(t, strings.HasSuffix(ObjectKey("avatar", owner, "png"), ".png"))
	assert.NotEqual(t, ObjectKey("logo", owner, ".webp"), ObjectKey("logo", owner, ".webp"))
}

func TestOwnedBy_RejectsForeignShapes(t *testing.T) {
	owner := uuid.New()

	for _, key := range []string{
		"",
		owner.String(),
		"resumes/" + owner.String(),
		"resumes/" + owner.String() + "/",
		"resumes/" + owner.String() + "/../x.pdf",
		"resumes/other/" + owner.String() + "/x.pdf",
	} {
		assert.False(t, OwnedBy(key, owner), key)
	}
}
