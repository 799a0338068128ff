// Copyright (c) 2026 Namira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// We keep it short (15m) to minimize the impact of a leaked token.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the duration a session/refresh token remains valid.
	// Long-lived (30 days) to provide a good user experience.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenLength is the byte length of the random secure token.
	RefreshTokenLength = 32

	// LoginChallengeTTL is the window for redeeming a login one-time code.
	// Short-lived (5 minutes): the code was just delivered to the user.
	LoginChallengeTTL = 5 * time.Minute

	// LoginChallengeTokenLength is the byte length of the challenge token.
	LoginChallengeTokenLength = 32

	// OneTimeCodeDigits is the length of the numeric login code.
	OneTimeCodeDigits = 6
)
