package identity

import (
	"strconv"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/earthen/shopctl/credentials"
	clienterrors "github.com/earthen/shopctl/internal/errors"
	"github.com/earthen/shopctl/internal/utils"
)

// Decode extracts the identity claims from a credential's access token
// without any network call. The token is parsed structurally only: the
// signature is the server's concern and expiry is not checked here — an
// expired token still decodes, and the remote API rejects it on use.
//
// A token that is not structurally a JWT, or whose claims cannot be
// extracted, fails with ErrMalformedCredential.
func Decode(credential *credentials.Credential) (*Identity, error) {
	if credential.Empty() {
		return nil, clienterrors.ErrMalformedCredential
	}

	token, _, err := jwtlib.NewParser().ParseUnverified(credential.Access, jwtlib.MapClaims{})
	if err != nil {
		return nil, clienterrors.Wrapf(clienterrors.ErrMalformedCredential, "parse access token: %v", err)
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, clienterrors.Wrapf(clienterrors.ErrMalformedCredential, "extract claims")
	}

	username, _ := claims["username"].(string)
	email, _ := claims["email"].(string)

	var userID int64
	switch v := claims["user_id"].(type) {
	case float64:
		userID = int64(v)
	case string:
		// Some token backends serialize the subject as a string.
		userID, _ = strconv.ParseInt(v, 10, 64)
	}

	var exp *int64
	if expClaim, ok := claims["exp"].(float64); ok {
		exp = utils.Ptr(int64(expClaim))
	}

	return &Identity{
		UserID:   userID,
		Username: username,
		Email:    email,
		Exp:      exp,
	}, nil
}
