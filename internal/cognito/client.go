package cognito

import "context"

// Client is the identity provider used for account sign-up and sign-in.
type Client interface {
	SignUp(ctx context.Context, input SignUpInput) (SignUpOutput, error)
	ConfirmSignUp(ctx context.Context, input ConfirmSignUpInput) error
	ResendConfirmationCode(ctx context.Context, email string) error
	SignIn(ctx context.Context, input SignInInput) (Tokens, error)
	RefreshTokens(ctx context.Context, input RefreshInput) (Tokens, error)
	GlobalSignOut(ctx context.Context, accessToken string) error
}

type SignUpInput struct {
	Email    string
	Password string
}

type SignUpOutput struct {
	UserSub      string
	Confirmed    bool
	CodeDelivery string // e.g. "EMAIL"
}

type ConfirmSignUpInput struct {
	Email string
	Code  string
}

type SignInInput struct {
	Email    string
	Password string
}

type RefreshInput struct {
	Email        string
	RefreshToken string
}

// Tokens are issued by a successful sign-in or refresh. RefreshToken is
// empty after a refresh.
type Tokens struct {
	IDToken      string
	AccessToken  string
	RefreshToken string
	ExpiresIn    int32
	TokenType    string
}
