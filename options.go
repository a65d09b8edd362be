// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xfut

// Option configures a future or stream type at definition time.
type Option func(*futureClass)

// WithTryCatch replaces the producer-side failure capture boundary for
// every producer launched under this type. The default boundary
// recovers any panic except [Violation] and reports its rendered
// message; a custom boundary can translate domain errors or rethrow
// what it considers fatal.
func WithTryCatch(tc TryCatch) Option {
	return func(c *futureClass) {
		c.trycatch = tc
	}
}
