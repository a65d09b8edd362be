// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xfut

// SuspensionAllocs exposes the suspension allocation counter so tests
// can assert that settled-on-first-poll paths construct no suspension.
func SuspensionAllocs() uint32 {
	return suspensionAllocs.Load()
}
