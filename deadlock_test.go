// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xfut_test

import (
	"testing"
	"time"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/xfut"
)

func TestRunWouldBlockBackoffCoverage(t *testing.T) {
	a := xfut.AwaitBind[int](&manualSource{}, func(n int) kont.Eff[struct{}] {
		return kont.Pure(struct{}{})
	})
	b := xfut.AwaitBind[int](&manualSource{}, func(n int) kont.Eff[struct{}] {
		return kont.Pure(struct{}{})
	})

	go func() {
		xfut.Run(a, b)
	}()

	time.Sleep(50 * time.Millisecond) // Give it time to hit bo.Wait()
}

func TestExecBackoffCoverage(t *testing.T) {
	src := &manualSource{}
	go func() {
		// Let the consumer park and spin before settling.
		time.Sleep(50 * time.Millisecond)
		src.settle(xfut.PollComplete, 1, "")
	}()

	v := xfut.Exec(xfut.AwaitBind[int](src, func(n int) kont.Eff[int] {
		return kont.Pure(n)
	}))
	if v != 1 {
		t.Fatalf("Exec got %d, want 1", v)
	}
}
