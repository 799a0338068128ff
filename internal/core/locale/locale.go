// Copyright (c) 2026 Namira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package locale

import "time"

// Locale represents a display language supported by the dictionary.
type Locale struct {
	ID         int       `json:"id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	NativeName string    `json:"native_name"`
	CreatedAt  time.Time `json:"-"`
}

// # Supported Codes

const (
	// CodeTamil is the primary locale. Every name carries exactly one
	// representative Tamil variant in search results.
	CodeTamil = "ta"

	CodeEnglish = "en"
	CodeFrench  = "fr"
)

// RequiredCodes lists the locales that MUST exist in storage for the
// system to operate. A missing entry is a deployment fault, not a
// runtime condition.
func RequiredCodes() []string {
	return []string{CodeTamil, CodeEnglish, CodeFrench}
}
