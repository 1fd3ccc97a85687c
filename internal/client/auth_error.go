// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.
package client

import (
	"errors"
	"fmt"

	"github.com/rusq/slack"
)

// AuthError is the error returned by New, the underlying Err contains the
// API error returned by the auth test call.
type AuthError struct {
	Err error
}

func (ae *AuthError) Error() string {
	return fmt.Sprintf("authentication error: %s", ae.Err)
}

func (ae *AuthError) Unwrap() error {
	return ae.Err
}

func (ae *AuthError) Is(target error) bool {
	return target == ae.Err
}

// IsInvalidAuth reports whether the error is an authentication error caused
// by an invalid or expired token.
func IsInvalidAuth(err error) bool {
	var ae *AuthError
	if !errors.As(err, &ae) {
		return false
	}
	var ser slack.SlackErrorResponse
	if !errors.As(ae.Err, &ser) {
		return false
	}
	return ser.Err == "invalid_auth"
}
