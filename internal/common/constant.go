package common

// AuthorizationHeaderName carries the bearer token on every authenticated request.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the only accepted authorization scheme.
const BearerScheme = "Bearer"

// MaxPasswordBytes is the longest password bcrypt accepts without truncation.
const MaxPasswordBytes = 72
