// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import "context"

// # Search History Data Access

// HistoryRepository defines the data access contract for per-user search history.
type HistoryRepository interface {

	/*
		Append records one successful search.

		Parameters:
		  - context: context.Context
		  - entry: *HistoryEntry

		Returns:
		  - error: Persistence failures
	*/
	Append(context context.Context, entry *HistoryEntry) error

	/*
		ListByUser returns the user's history, newest first.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - limit: int

		Returns:
		  - []HistoryEntry: Possibly empty, never nil
		  - error: Database retrieval failures
	*/
	ListByUser(context context.Context, userID string, limit int) ([]HistoryEntry, error)

	/*
		Delete removes one entry owned by the user.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - id: string

		Returns:
		  - error: apperr.NotFound if no such entry belongs to the user
	*/
	Delete(context context.Context, userID, id string) error
}
