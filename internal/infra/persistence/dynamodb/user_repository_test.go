package dynamodb

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dentist/config"
	"dentist/internal/domain/entity"
	domainerrors "dentist/internal/domain/errors"
	"dentist/internal/domain/service"
	"dentist/internal/errors"
	mockSvc "dentist/internal/mocks/service"
)

var fixedNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

type repoFixtures struct {
	repo   *userRepository
	client *mockAPI
	tokens *mockSvc.MockTokenService
}

func newRepoFixtures(t *testing.T) repoFixtures {
	t.Helper()

	client := &mockAPI{}
	client.Test(t)
	t.Cleanup(func() { client.AssertExpectations(t) })
	tokens := mockSvc.NewMockTokenService(t)

	cfg := &config.Config{}
	cfg.DynamoDB.TablePrefix = "test-"
	cfg.DynamoDB.Table = "dentist"

	repo := NewUserRepository(UserRepositoryParams{
		Client:       client,
		Config:       cfg,
		TokenService: tokens,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}).(*userRepository)
	repo.now = func() time.Time { return fixedNow }

	return repoFixtures{repo: repo, client: client, tokens: tokens}
}

func marshalUser(t *testing.T, u *entity.User) map[string]types.AttributeValue {
	t.Helper()

	item, err := attributevalue.MarshalMap(toItem(u))
	require.NoError(t, err)

	return item
}

func stringAttr(t *testing.T, item map[string]types.AttributeValue, name string) string {
	t.Helper()

	s, ok := item[name].(*types.AttributeValueMemberS)
	require.True(t, ok, "attribute %s is not a string", name)

	return s.Value
}

func TestUserRepository_Create(t *testing.T) {
	fx := newRepoFixtures(t)
	ctx := context.Background()

	fx.client.On("PutItem", ctx, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
		return aws.ToString(in.TableName) == "test-dentist" &&
			strings.Contains(aws.ToString(in.ConditionExpression), "attribute_not_exists")
	})).Run(func(args mock.Arguments) {
		in := args.Get(1).(*dynamodb.PutItemInput)
		assert.Equal(t, "user#mario", stringAttr(t, in.Item, "pk"))
		assert.Equal(t, "user#mario", stringAttr(t, in.Item, "sk"))
		assert.Equal(t, "user", stringAttr(t, in.Item, "type"))
		assert.Equal(t, "user", stringAttr(t, in.Item, "role"))
		assert.Equal(t, "hash", stringAttr(t, in.Item, "password"))
		assert.NotContains(t, in.Item, "tokens")
		assert.Equal(t, &types.AttributeValueMemberN{Value: "1"}, in.Item["version"])
	}).Return(&dynamodb.PutItemOutput{}, nil).Once()

	created, err := fx.repo.Create(ctx, &entity.User{UserName: "mario", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.Equal(t, 1, created.Version)
	assert.Equal(t, entity.RoleUser, created.Role)
	assert.Equal(t, fixedNow, created.Created)
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	fx := newRepoFixtures(t)
	ctx := context.Background()

	fx.client.On("PutItem", ctx, mock.Anything).
		Return(nil, &types.ConditionalCheckFailedException{Message: aws.String("exists")}).Once()

	_, err := fx.repo.Create(ctx, &entity.User{UserName: "mario"})
	assert.True(t, errors.Is(err, domainerrors.ErrAlreadyExists))
}

func TestUserRepository_CreateOtherErrorPropagates(t *testing.T) {
	fx := newRepoFixtures(t)
	ctx := context.Background()

	fx.client.On("PutItem", ctx, mock.Anything).Return(nil, errors.New("throttled")).Once()

	_, err := fx.repo.Create(ctx, &entity.User{UserName: "mario"})
	require.Error(t, err)
	assert.Equal(t, domainerrors.KindInternal, domainerrors.KindOf(err))
	assert.Contains(t, err.Error(), "throttled")
}

func TestUserRepository_FindByUserName(t *testing.T) {
	fx := newRepoFixtures(t)
	ctx := context.Background()

	stored := &entity.User{
		UserName:     "mario",
		Name:         "Mario",
		PasswordHash: "hash",
		Tokens:       []string{"a", "b"},
		Role:         entity.RoleAdmin,
		Version:      3,
		Created:      fixedNow,
		Modified:     fixedNow,
	}
	fx.client.On("GetItem", ctx, mock.MatchedBy(func(in *dynamodb.GetItemInput) bool {
		pk, _ := in.Key["pk"].(*types.AttributeValueMemberS)

		return pk != nil && pk.Value == "user#mario" && aws.ToBool(in.ConsistentRead)
	})).Return(&dynamodb.GetItemOutput{Item: marshalUser(t, stored)}, nil).Once()

	got, err := fx.repo.FindByUserName(ctx, "mario")
	require.NoError(t, err)
	assert.Equal(t, stored, got)
}

func TestUserRepository_FindByUserNameMissing(t *testing.T) {
	fx := newRepoFixtures(t)
	ctx := context.Background()

	fx.client.On("GetItem", ctx, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil).Once()

	_, err := fx.repo.FindByUserName(ctx, "ghost")
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestUserRepository_UpdateReturnsAllNew(t *testing.T) {
	fx := newRepoFixtures(t)
	ctx := context.Background()

	after := &entity.User{UserName: "mario", Name: "Luigi", Role: entity.RoleUser, Version: 2}
	fx.client.On("UpdateItem", ctx, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
		return in.ReturnValues == types.ReturnValueAllNew &&
			strings.Contains(aws.ToString(in.ConditionExpression), "attribute_exists") &&
			strings.Contains(aws.ToString(in.UpdateExpression), "SET") &&
			strings.Contains(aws.ToString(in.UpdateExpression), "ADD")
	})).Return(&dynamodb.UpdateItemOutput{Attributes: marshalUser(t, after)}, nil).Once()

	name := "Luigi"
	got, err := fx.repo.Update(ctx, "mario", entity.UserPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Luigi", got.Name)
	assert.Equal(t, 2, got.Version)
}

func TestUserRepository_ConditionalFailuresAreNotFound(t *testing.T) {
	ccf := &types.ConditionalCheckFailedException{Message: aws.String("missing")}
	name := "x"

	tests := []struct {
		name string
		call func(r *userRepository) error
	}{
		{name: "update", call: func(r *userRepository) error {
			_, err := r.Update(context.Background(), "ghost", entity.UserPatch{Name: &name})

			return err
		}},
		{name: "add token", call: func(r *userRepository) error {
			return r.AddToken(context.Background(), "ghost", "t")
		}},
		{name: "remove token", call: func(r *userRepository) error {
			return r.RemoveToken(context.Background(), "ghost", "t")
		}},
		{name: "password", call: func(r *userRepository) error {
			return r.UpdatePasswordHash(context.Background(), "ghost", "h")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newRepoFixtures(t)
			fx.client.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, ccf).Once()

			assert.True(t, errors.Is(tt.call(fx.repo), domainerrors.ErrNotFound))
		})
	}

	t.Run("delete", func(t *testing.T) {
		fx := newRepoFixtures(t)
		fx.client.On("DeleteItem", mock.Anything, mock.Anything).Return(nil, ccf).Once()

		assert.True(t, errors.Is(fx.repo.Delete(context.Background(), "ghost"), domainerrors.ErrNotFound))
	})
}

func TestUserRepository_TokenSetOperations(t *testing.T) {
	fx := newRepoFixtures(t)
	ctx := context.Background()

	setOperand := func(in *dynamodb.UpdateItemInput) bool {
		for _, v := range in.ExpressionAttributeValues {
			if ss, ok := v.(*types.AttributeValueMemberSS); ok {
				return len(ss.Value) == 1 && ss.Value[0] == "tok"
			}
		}

		return false
	}

	fx.client.On("UpdateItem", ctx, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
		return setOperand(in) && strings.Contains(aws.ToString(in.UpdateExpression), "ADD") &&
			!strings.Contains(aws.ToString(in.UpdateExpression), "DELETE")
	})).Return(&dynamodb.UpdateItemOutput{}, nil).Once()
	fx.client.On("UpdateItem", ctx, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
		return setOperand(in) && strings.Contains(aws.ToString(in.UpdateExpression), "DELETE")
	})).Return(&dynamodb.UpdateItemOutput{}, nil).Once()

	require.NoError(t, fx.repo.AddToken(ctx, "mario", "tok"))
	require.NoError(t, fx.repo.RemoveToken(ctx, "mario", "tok"))
}

func TestUserRepository_ListCollectsAllPages(t *testing.T) {
	fx := newRepoFixtures(t)
	ctx := context.Background()

	first := marshalUser(t, &entity.User{UserName: "a"})
	second := marshalUser(t, &entity.User{UserName: "b"})
	third := marshalUser(t, &entity.User{UserName: "c"})

	fx.client.On("Scan", mock.Anything, mock.MatchedBy(func(in *dynamodb.ScanInput) bool {
		return len(in.ExclusiveStartKey) == 0 &&
			strings.Contains(aws.ToString(in.FilterExpression), "begins_with")
	})).Return(&dynamodb.ScanOutput{
		Items:            []map[string]types.AttributeValue{first, second},
		LastEvaluatedKey: userKey("b"),
	}, nil).Once()
	fx.client.On("Scan", mock.Anything, mock.MatchedBy(func(in *dynamodb.ScanInput) bool {
		return len(in.ExclusiveStartKey) != 0
	})).Return(&dynamodb.ScanOutput{
		Items: []map[string]types.AttributeValue{third},
	}, nil).Once()

	list, err := fx.repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, list.Count)
	assert.Equal(t, "c", list.Data[2].UserName)
}

func TestUserRepository_FindByToken(t *testing.T) {
	ctx := context.Background()
	stored := &entity.User{UserName: "mario", Tokens: []string{"live"}}

	t.Run("live token", func(t *testing.T) {
		fx := newRepoFixtures(t)
		fx.tokens.On("Decode", "live").Return(&service.Claims{UserName: "mario"}, nil).Once()
		fx.client.On("GetItem", ctx, mock.Anything).Return(&dynamodb.GetItemOutput{Item: marshalUser(t, stored)}, nil).Once()

		u, err := fx.repo.FindByToken(ctx, "live")
		require.NoError(t, err)
		assert.Equal(t, "mario", u.UserName)
	})

	t.Run("revoked token", func(t *testing.T) {
		fx := newRepoFixtures(t)
		fx.tokens.On("Decode", "old").Return(&service.Claims{UserName: "mario"}, nil).Once()
		fx.client.On("GetItem", ctx, mock.Anything).Return(&dynamodb.GetItemOutput{Item: marshalUser(t, stored)}, nil).Once()

		_, err := fx.repo.FindByToken(ctx, "old")
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
	})

	t.Run("deleted subject", func(t *testing.T) {
		fx := newRepoFixtures(t)
		fx.tokens.On("Decode", "live").Return(&service.Claims{UserName: "mario"}, nil).Once()
		fx.client.On("GetItem", ctx, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil).Once()

		_, err := fx.repo.FindByToken(ctx, "live")
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
	})

	t.Run("undecodable", func(t *testing.T) {
		fx := newRepoFixtures(t)
		fx.tokens.On("Decode", "junk").Return(nil, domainerrors.ErrInvalidToken).Once()

		_, err := fx.repo.FindByToken(ctx, "junk")
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
	})
}
