// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client assembles the daybook core for one process: the local
// store, the sync queue and its remote adapter, the session gate, the
// domain services and the background workers.
package client
