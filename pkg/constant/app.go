// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package constant

const ApplicationName = "talenthub"

// ErrFileAccepted is the Fiber error message when no file is associated with the given form key.
const ErrFileAccepted = "there is no uploaded file associated with the given key"

// DefaultPasswordPlaceholder is the placeholder value that must be replaced before production use.
const DefaultPasswordPlaceholder = "CHANGE_ME"

// RedactPlaceholder is the replacement value for masked credentials in connection strings.
const RedactPlaceholder = "REDACTED"
