// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// Principal is the account resolved for an authenticated request.
type Principal struct {
	AccountID   string
	Username    string
	DisplayName string
}
