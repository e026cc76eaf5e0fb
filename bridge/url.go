// Copyright (C) 2025 sage-x-project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// SPDX-License-Identifier: LGPL-3.0-or-later

package bridge

import (
	"fmt"
	"net/url"

	"github.com/worldcoin/idkit-go/proofrequest"
)

// DefaultBaseURL is the production bridge relay.
const DefaultBaseURL = "https://bridge.worldcoin.org"

// ValidateBaseURL checks a caller-supplied bridge URL and returns its
// canonical form. Production callers are restricted to HTTPS, the default
// port, no path beyond "/", no query and no fragment. Staging app IDs
// additionally permit http://localhost or http://127.0.0.1 on any port, to
// support local bridge development.
func ValidateBaseURL(raw, appID string) (string, error) {
	if raw == "" {
		return DefaultBaseURL, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: parsing bridge url: %v", ErrInvalidConfiguration, err)
	}

	if proofrequest.IsStagingAppID(appID) && isLoopbackHTTP(u) {
		return u.String(), nil
	}
	if u.Scheme != "https" {
		return "", fmt.Errorf("%w: bridge url must use https", ErrInvalidConfiguration)
	}
	if u.Port() != "" {
		return "", fmt.Errorf("%w: bridge url must not specify an explicit port", ErrInvalidConfiguration)
	}
	if u.Path != "" && u.Path != "/" {
		return "", fmt.Errorf("%w: bridge url must not have a path", ErrInvalidConfiguration)
	}
	if u.RawQuery != "" {
		return "", fmt.Errorf("%w: bridge url must not have a query", ErrInvalidConfiguration)
	}
	if u.Fragment != "" {
		return "", fmt.Errorf("%w: bridge url must not have a fragment", ErrInvalidConfiguration)
	}
	return u.String(), nil
}

func isLoopbackHTTP(u *url.URL) bool {
	if u.Scheme != "http" {
		return false
	}
	host := u.Hostname()
	return host == "localhost" || host == "127.0.0.1"
}
