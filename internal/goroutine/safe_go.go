package goroutine

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/ignatzorin/resource-sharing-backend/internal/logger"
)

// SafeGo запускает горутину с обработкой panic.
// Используется для фоновой отправки событий, падение которых не должно
// ронять основную операцию.
func SafeGo(fn func()) {
	go func() {
		defer recoverPanic()
		fn()
	}()
}

// SafeGoWithContext запускает горутину с контекстом и обработкой panic.
func SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	go func() {
		defer recoverPanic()
		fn(ctx)
	}()
}

func recoverPanic() {
	if r := recover(); r != nil {
		if logger.Log != nil {
			logger.Log.Errorf("panic в горутине: %v\n%s", r, debug.Stack())
			return
		}
		fmt.Printf("[ERROR] panic в горутине: %v\n%s\n", r, debug.Stack())
	}
}
