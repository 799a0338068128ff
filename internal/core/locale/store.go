// Copyright (c) 2026 Namira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package locale

import "context"

// Repository defines the data access contract.
type Repository interface {
	ListLocales(context context.Context) ([]*Locale, error)
}
