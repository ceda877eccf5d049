package service_test

import (
	"context"
	"database/sql"

	"github.com/jaekwang-park/todo-dashboard/internal/cognito"
	"github.com/jaekwang-park/todo-dashboard/internal/model"
)

type mockTodoRepo struct {
	createFn  func(ctx context.Context, todo model.Todo) (model.Todo, error)
	getByIDFn func(ctx context.Context, userID, todoID string) (model.Todo, error)
	updateFn  func(ctx context.Context, todo model.Todo) (model.Todo, error)
	deleteFn  func(ctx context.Context, userID, todoID string) error
	listAllFn func(ctx context.Context, userID string) ([]model.Todo, error)
}

func (m *mockTodoRepo) Create(ctx context.Context, todo model.Todo) (model.Todo, error) {
	return m.createFn(ctx, todo)
}
func (m *mockTodoRepo) GetByID(ctx context.Context, userID, todoID string) (model.Todo, error) {
	return m.getByIDFn(ctx, userID, todoID)
}
func (m *mockTodoRepo) Update(ctx context.Context, todo model.Todo) (model.Todo, error) {
	return m.updateFn(ctx, todo)
}
func (m *mockTodoRepo) Delete(ctx context.Context, userID, todoID string) error {
	return m.deleteFn(ctx, userID, todoID)
}
func (m *mockTodoRepo) ListAll(ctx context.Context, userID string) ([]model.Todo, error) {
	return m.listAllFn(ctx, userID)
}

type mockCategoryRepo struct {
	createFn  func(ctx context.Context, c model.Category) (model.Category, error)
	getByIDFn func(ctx context.Context, userID, id string) (model.Category, error)
	listFn    func(ctx context.Context, userID string) ([]model.Category, error)
	updateFn  func(ctx context.Context, c model.Category) (model.Category, error)
	deleteFn  func(ctx context.Context, userID, id string) error
}

func (m *mockCategoryRepo) Create(ctx context.Context, c model.Category) (model.Category, error) {
	return m.createFn(ctx, c)
}
func (m *mockCategoryRepo) GetByID(ctx context.Context, userID, id string) (model.Category, error) {
	return m.getByIDFn(ctx, userID, id)
}
func (m *mockCategoryRepo) List(ctx context.Context, userID string) ([]model.Category, error) {
	return m.listFn(ctx, userID)
}
func (m *mockCategoryRepo) Update(ctx context.Context, c model.Category) (model.Category, error) {
	return m.updateFn(ctx, c)
}
func (m *mockCategoryRepo) Delete(ctx context.Context, userID, id string) error {
	return m.deleteFn(ctx, userID, id)
}

type mockGroupRepo struct {
	createFn  func(ctx context.Context, g model.Group) (model.Group, error)
	getByIDFn func(ctx context.Context, userID, id string) (model.Group, error)
	listFn    func(ctx context.Context, userID string) ([]model.Group, error)
	updateFn  func(ctx context.Context, g model.Group) (model.Group, error)
	deleteFn  func(ctx context.Context, userID, id string) error
}

func (m *mockGroupRepo) Create(ctx context.Context, g model.Group) (model.Group, error) {
	return m.createFn(ctx, g)
}
func (m *mockGroupRepo) GetByID(ctx context.Context, userID, id string) (model.Group, error) {
	return m.getByIDFn(ctx, userID, id)
}
func (m *mockGroupRepo) List(ctx context.Context, userID string) ([]model.Group, error) {
	return m.listFn(ctx, userID)
}
func (m *mockGroupRepo) Update(ctx context.Context, g model.Group) (model.Group, error) {
	return m.updateFn(ctx, g)
}
func (m *mockGroupRepo) Delete(ctx context.Context, userID, id string) error {
	return m.deleteFn(ctx, userID, id)
}

type mockTagRepo struct {
	createFn  func(ctx context.Context, t model.Tag) (model.Tag, error)
	getByIDFn func(ctx context.Context, userID, id string) (model.Tag, error)
	listFn    func(ctx context.Context, userID string) ([]model.Tag, error)
	updateFn  func(ctx context.Context, t model.Tag) (model.Tag, error)
	deleteFn  func(ctx context.Context, userID, id string) error
}

func (m *mockTagRepo) Create(ctx context.Context, t model.Tag) (model.Tag, error) {
	return m.createFn(ctx, t)
}
func (m *mockTagRepo) GetByID(ctx context.Context, userID, id string) (model.Tag, error) {
	return m.getByIDFn(ctx, userID, id)
}
func (m *mockTagRepo) List(ctx context.Context, userID string) ([]model.Tag, error) {
	return m.listFn(ctx, userID)
}
func (m *mockTagRepo) Update(ctx context.Context, t model.Tag) (model.Tag, error) {
	return m.updateFn(ctx, t)
}
func (m *mockTagRepo) Delete(ctx context.Context, userID, id string) error {
	return m.deleteFn(ctx, userID, id)
}

// knownCategories accepts lookups for the given ids and reports
// sql.ErrNoRows for everything else.
func knownCategories(ids ...string) *mockCategoryRepo {
	return &mockCategoryRepo{
		getByIDFn: func(ctx context.Context, userID, id string) (model.Category, error) {
			for _, known := range ids {
				if id == known {
					return model.Category{ID: id, UserID: userID}, nil
				}
			}
			return model.Category{}, sql.ErrNoRows
		},
	}
}

func knownGroups(ids ...string) *mockGroupRepo {
	return &mockGroupRepo{
		getByIDFn: func(ctx context.Context, userID, id string) (model.Group, error) {
			for _, known := range ids {
				if id == known {
					return model.Group{ID: id, UserID: userID}, nil
				}
			}
			return model.Group{}, sql.ErrNoRows
		},
	}
}

type mockCognitoClient struct {
	signUpFn                 func(ctx context.Context, input cognito.SignUpInput) (cognito.SignUpOutput, error)
	confirmSignUpFn          func(ctx context.Context, input cognito.ConfirmSignUpInput) error
	resendConfirmationCodeFn func(ctx context.Context, email string) error
	signInFn                 func(ctx context.Context, input cognito.SignInInput) (cognito.Tokens, error)
	refreshTokensFn          func(ctx context.Context, input cognito.RefreshInput) (cognito.Tokens, error)
	globalSignOutFn          func(ctx context.Context, accessToken string) error
}

func (m *mockCognitoClient) SignUp(ctx context.Context, input cognito.SignUpInput) (cognito.SignUpOutput, error) {
	return m.signUpFn(ctx, input)
}
func (m *mockCognitoClient) ConfirmSignUp(ctx context.Context, input cognito.ConfirmSignUpInput) error {
	return m.confirmSignUpFn(ctx, input)
}
func (m *mockCognitoClient) ResendConfirmationCode(ctx context.Context, email string) error {
	return m.resendConfirmationCodeFn(ctx, email)
}
func (m *mockCognitoClient) SignIn(ctx context.Context, input cognito.SignInInput) (cognito.Tokens, error) {
	return m.signInFn(ctx, input)
}
func (m *mockCognitoClient) RefreshTokens(ctx context.Context, input cognito.RefreshInput) (cognito.Tokens, error) {
	return m.refreshTokensFn(ctx, input)
}
func (m *mockCognitoClient) GlobalSignOut(ctx context.Context, accessToken string) error {
	return m.globalSignOutFn(ctx, accessToken)
}

type mockUserRepo struct {
	getOrCreateFn     func(ctx context.Context, cognitoSub, email string) (model.User, error)
	getByCognitoSubFn func(ctx context.Context, cognitoSub string) (model.User, error)
	getByIDFn         func(ctx context.Context, userID string) (model.User, error)
}

func (m *mockUserRepo) GetOrCreate(ctx context.Context, cognitoSub, email string) (model.User, error) {
	return m.getOrCreateFn(ctx, cognitoSub, email)
}
func (m *mockUserRepo) GetByCognitoSub(ctx context.Context, cognitoSub string) (model.User, error) {
	return m.getByCognitoSubFn(ctx, cognitoSub)
}
func (m *mockUserRepo) GetByID(ctx context.Context, userID string) (model.User, error) {
	return m.getByIDFn(ctx, userID)
}
