// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package storage

import (
	"path"
	"strings"

	"github.com/google/uuid"
)

// ObjectKey builds the storage key of an uploaded file: <kind>s/<owner>/<random id><ext>.
func ObjectKey(kind string, owner uuid.UUID, ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	return path.Join(kind+"s", owner.String(), uuid.NewString()+ext)
}

// OwnedBy reports whether key was produced by ObjectKey for owner.
func OwnedBy(key string, owner uuid.UUID) bool {
	if strings.Contains(key, "..") {
		return false
	}

	parts := strings.Split(key, "/")

	return len(parts) == 3 && parts[1] == owner.String() && parts[2] != ""
}
