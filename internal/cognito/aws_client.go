package cognito

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
)

// AWSClient implements Client against a Cognito user pool app client.
type AWSClient struct {
	cip          *cip.Client
	clientID     string
	clientSecret string
}

func NewAWSClient(ctx context.Context, region, clientID, clientSecret string) (*AWSClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &AWSClient{
		cip:          cip.NewFromConfig(cfg),
		clientID:     clientID,
		clientSecret: clientSecret,
	}, nil
}

func (c *AWSClient) secretHash(email string) *string {
	if c.clientSecret == "" {
		return nil
	}
	return aws.String(ComputeSecretHash(email, c.clientID, c.clientSecret))
}

func (c *AWSClient) SignUp(ctx context.Context, input SignUpInput) (SignUpOutput, error) {
	out, err := c.cip.SignUp(ctx, &cip.SignUpInput{
		ClientId:   aws.String(c.clientID),
		SecretHash: c.secretHash(input.Email),
		Username:   aws.String(input.Email),
		Password:   aws.String(input.Password),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(input.Email)},
		},
	})
	if err != nil {
		return SignUpOutput{}, mapAWSError(err)
	}

	var delivery string
	if out.CodeDeliveryDetails != nil {
		delivery = string(out.CodeDeliveryDetails.DeliveryMedium)
	}
	return SignUpOutput{
		UserSub:      aws.ToString(out.UserSub),
		Confirmed:    out.UserConfirmed,
		CodeDelivery: delivery,
	}, nil
}

func (c *AWSClient) ConfirmSignUp(ctx context.Context, input ConfirmSignUpInput) error {
	_, err := c.cip.ConfirmSignUp(ctx, &cip.ConfirmSignUpInput{
		ClientId:         aws.String(c.clientID),
		SecretHash:       c.secretHash(input.Email),
		Username:         aws.String(input.Email),
		ConfirmationCode: aws.String(input.Code),
	})
	return mapAWSError(err)
}

func (c *AWSClient) ResendConfirmationCode(ctx context.Context, email string) error {
	_, err := c.cip.ResendConfirmationCode(ctx, &cip.ResendConfirmationCodeInput{
		ClientId:   aws.String(c.clientID),
		SecretHash: c.secretHash(email),
		Username:   aws.String(email),
	})
	return mapAWSError(err)
}

func (c *AWSClient) SignIn(ctx context.Context, input SignInInput) (Tokens, error) {
	params := map[string]string{
		"USERNAME": input.Email,
		"PASSWORD": input.Password,
	}
	return c.initiateAuth(ctx, types.AuthFlowTypeUserPasswordAuth, input.Email, params)
}

func (c *AWSClient) RefreshTokens(ctx context.Context, input RefreshInput) (Tokens, error) {
	params := map[string]string{
		"REFRESH_TOKEN": input.RefreshToken,
	}
	return c.initiateAuth(ctx, types.AuthFlowTypeRefreshTokenAuth, input.Email, params)
}

func (c *AWSClient) GlobalSignOut(ctx context.Context, accessToken string) error {
	_, err := c.cip.GlobalSignOut(ctx, &cip.GlobalSignOutInput{
		AccessToken: aws.String(accessToken),
	})
	return mapAWSError(err)
}

func (c *AWSClient) initiateAuth(ctx context.Context, flow types.AuthFlowType, email string, params map[string]string) (Tokens, error) {
	if h := c.secretHash(email); h != nil {
		params["SECRET_HASH"] = *h
	}

	out, err := c.cip.InitiateAuth(ctx, &cip.InitiateAuthInput{
		ClientId:       aws.String(c.clientID),
		AuthFlow:       flow,
		AuthParameters: params,
	})
	if err != nil {
		return Tokens{}, mapAWSError(err)
	}
	// A challenge (MFA, new password) leaves AuthenticationResult empty.
	if out.AuthenticationResult == nil {
		return Tokens{}, fmt.Errorf("cognito: unsupported auth challenge %q", out.ChallengeName)
	}

	r := out.AuthenticationResult
	return Tokens{
		IDToken:      aws.ToString(r.IdToken),
		AccessToken:  aws.ToString(r.AccessToken),
		RefreshToken: aws.ToString(r.RefreshToken),
		ExpiresIn:    r.ExpiresIn,
		TokenType:    aws.ToString(r.TokenType),
	}, nil
}

var awsErrorCodes = map[string]error{
	"UsernameExistsException":        ErrUserAlreadyExists,
	"UserNotFoundException":          ErrUserNotFound,
	"UserNotConfirmedException":      ErrUserNotConfirmed,
	"InvalidPasswordException":       ErrInvalidPassword,
	"CodeMismatchException":          ErrInvalidCode,
	"ExpiredCodeException":           ErrCodeExpired,
	"TooManyRequestsException":       ErrTooManyRequests,
	"LimitExceededException":         ErrTooManyRequests,
	"NotAuthorizedException":         ErrNotAuthorized,
	"PasswordResetRequiredException": ErrPasswordResetRequired,
	"InvalidParameterException":      ErrInvalidParameter,
}

// mapAWSError wraps known Cognito API errors with a sentinel. nil stays nil.
func mapAWSError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("cognito: %w", err)
	}
	if sentinel, ok := awsErrorCodes[apiErr.ErrorCode()]; ok {
		return fmt.Errorf("%s: %w", apiErr.ErrorMessage(), sentinel)
	}
	return fmt.Errorf("cognito %s: %w", apiErr.ErrorCode(), err)
}

var _ Client = (*AWSClient)(nil)
