package middleware

import (
	"errors"
	"fmt"
	"net/http"
)

// Recoverer turns a panic in next into a call to onPanic, which must write the
// response. http.ErrAbortHandler is re-raised so net/http can drop the
// connection quietly.
func Recoverer(onPanic func(w http.ResponseWriter, r *http.Request, err error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				onPanic(w, r, panicError(rec))
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func panicError(rec interface{}) error {
	if err, ok := rec.(error); ok {
		return err
	}
	return errors.New(fmt.Sprint(rec))
}
