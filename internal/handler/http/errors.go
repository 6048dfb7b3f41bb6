// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// ErrUnknownNetworkState is returned for a network state other than
// "online" or "offline".
var ErrUnknownNetworkState = errors.New("network state must be `online` or `offline`")
