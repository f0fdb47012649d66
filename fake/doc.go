// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

// Package fake provides in-memory test doubles for the api contracts.
// They are deterministic and allow failure injection, so tests can
// exercise allocation-error paths without a real backing pool.
package fake
