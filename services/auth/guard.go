package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/MarcGrol/bookstorebackend/lib/mycontext"
	"github.com/MarcGrol/bookstorebackend/lib/myerrors"
	"github.com/MarcGrol/bookstorebackend/lib/myhttp"
	"github.com/MarcGrol/bookstorebackend/lib/mylog"
)

type ctxUsernameKey struct{}

// Guard wraps http handlers that require an authenticated caller.
// The wrapped handler can trust the username found in the request context.
type Guard struct {
	tokenizer *Tokenizer
	logger    mylog.Logger
}

func NewGuard(tokenizer *Tokenizer) *Guard {
	return &Guard{
		tokenizer: tokenizer,
		logger:    mylog.New("authguard"),
	}
}

func (g *Guard) Authenticate(next http.HandlerFunc) http.HandlerFunc {
	return g.authenticate(next, false)
}

func (g *Guard) AuthenticateAdmin(next http.HandlerFunc) http.HandlerFunc {
	return g.authenticate(next, true)
}

func (g *Guard) authenticate(next http.HandlerFunc, adminOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(g.logger)

		tokenString, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !found {
			errorWriter.WriteError(c, w, 1, myerrors.NewAuthenticationError(fmt.Errorf("missing bearer token")))
			return
		}

		username, role, err := g.tokenizer.ParseToken(tokenString)
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewAuthenticationError(err))
			return
		}

		if adminOnly && role != RoleAdmin {
			errorWriter.WriteError(c, w, 3, myerrors.NewAuthenticationError(fmt.Errorf("user %s is not an admin", username)))
			return
		}

		ctx := context.WithValue(r.Context(), ctxUsernameKey{}, username)

		next(w, r.WithContext(ctx))
	}
}

func UsernameFromContext(c context.Context) (string, bool) {
	username, ok := c.Value(ctxUsernameKey{}).(string)
	return username, ok
}
