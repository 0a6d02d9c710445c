// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the stockpulse packages.
//
// # Key Functions
//
//   - NormalizeSymbol: trim + uppercase for ticker input
//   - SplitList: NFKC-folded comma separated symbol lists
//   - TruncateRunes: UTF-8 safe truncation with ellipsis
//   - AtomicWriteFile: crash-safe file writing with fsync
package util
