// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides time-ordered unique identifiers for the platform.

It wraps the standard UUID library to generate Version 7 values:

  - Sortable: ordered by creation time (millisecond precision), which is what
    the "newest first" listings of favorites and reviews rely on.
  - B-tree friendly: avoids index fragmentation in PostgreSQL.

Every account, favorite and review id is produced here, whatever the storage driver.
*/
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
func New() string {
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}
	return id.String()
}
