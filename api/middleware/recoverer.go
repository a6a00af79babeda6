package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/angelmondragon/windowquote-backend/api/responses"
	pkgerrors "github.com/angelmondragon/windowquote-backend/pkg/errors"
	"github.com/angelmondragon/windowquote-backend/pkg/logger"
)

// Recoverer turns a handler panic into a 500 envelope. When the handler already wrote
// a status the panic is only logged. http.ErrAbortHandler is re-raised untouched.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			defer func() {
				p := recover()
				if p == nil {
					return
				}
				if perr, ok := p.(error); ok && errors.Is(perr, http.ErrAbortHandler) {
					panic(p)
				}

				err := pkgerrors.Wrap(pkgerrors.CodeInternal, fmt.Errorf("panic: %v", p), "panic")
				ctx := r.Context()
				if rec.status != 0 {
					if logg != nil {
						logg.Error(logg.WithField(ctx, "status_sent", rec.status), "panic.after_response", err)
					}
					return
				}
				responses.WriteError(ctx, logg, w, err)
			}()
			next.ServeHTTP(rec, r)
		})
	}
}
