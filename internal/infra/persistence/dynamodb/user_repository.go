package dynamodb

import (
	"context"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/fx"

	"dentist/config"
	"dentist/internal/domain/entity"
	domainerrors "dentist/internal/domain/errors"
	"dentist/internal/domain/repository"
	"dentist/internal/domain/service"
	"dentist/internal/errors"
)

type userRepository struct {
	client       API
	table        string
	tokenService service.TokenService
	logger       *slog.Logger
	now          func() time.Time
}

// UserRepositoryParams holds dependencies for the DynamoDB user repository, injected by Fx.
type UserRepositoryParams struct {
	fx.In

	Client       API
	Config       *config.Config
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserRepository creates the DynamoDB credential store.
func NewUserRepository(params UserRepositoryParams) repository.UserRepository {
	return &userRepository{
		client:       params.Client,
		table:        params.Config.DynamoDB.TableName(),
		tokenService: params.TokenService,
		logger:       params.Logger.With(slog.String("module", "dynamodb")),
		now:          time.Now,
	}
}

func existsCondition() expression.ConditionBuilder {
	return expression.Name(attrPK).AttributeExists()
}

// writeStamp is the SET/ADD part every update carries.
func (r *userRepository) writeStamp() expression.UpdateBuilder {
	return expression.
		Set(expression.Name(attrModified), expression.Value(formatTime(r.now()))).
		Add(expression.Name(attrVersion), expression.Value(1))
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	now := r.now()
	stored := *user
	stored.Role = entity.RoleOrDefault(user.Role)
	stored.Version = 1
	stored.Created = now.UTC().Truncate(time.Second)
	stored.Modified = stored.Created

	item, err := attributevalue.MarshalMap(toItem(&stored))
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal user")
	}

	expr, err := expression.NewBuilder().
		WithCondition(expression.Name(attrPK).AttributeNotExists()).
		Build()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build create expression")
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(r.table),
		Item:                      item,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, classify(err, "put user "+user.UserName, domainerrors.ErrAlreadyExists)
	}

	return &stored, nil
}

func (r *userRepository) FindByUserName(ctx context.Context, userName string) (*entity.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.table),
		Key:            userKey(userName),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "get user %s", userName)
	}
	if len(out.Item) == 0 {
		return nil, domainerrors.ErrNotFound.WrapMessage("user " + userName)
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal user")
	}

	return item.toEntity(), nil
}

func (r *userRepository) Update(ctx context.Context, userName string, patch entity.UserPatch) (*entity.User, error) {
	update := r.writeStamp()
	set := func(attr string, v *string) {
		if v != nil {
			update = update.Set(expression.Name(attr), expression.Value(*v))
		}
	}
	set("name", patch.Name)
	set("surname", patch.Surname)
	set("telephone", patch.Telephone)
	set("fiscalCode", patch.FiscalCode)
	set("bornDate", patch.BornDate)
	if patch.Role != nil {
		update = update.Set(expression.Name(attrRole), expression.Value(patch.Role.String()))
	}

	out, err := r.updateItem(ctx, userName, update, types.ReturnValueAllNew)
	if err != nil {
		return nil, err
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &item); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal user")
	}

	return item.toEntity(), nil
}

func (r *userRepository) Delete(ctx context.Context, userName string) error {
	expr, err := expression.NewBuilder().WithCondition(existsCondition()).Build()
	if err != nil {
		return errors.Wrap(err, "failed to build delete expression")
	}

	_, err = r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                 aws.String(r.table),
		Key:                       userKey(userName),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return classify(err, "delete user "+userName, domainerrors.ErrNotFound)
	}

	return nil
}

func (r *userRepository) List(ctx context.Context) (*entity.UserList, error) {
	expr, err := expression.NewBuilder().
		WithFilter(expression.Name(attrPK).BeginsWith(repository.UserKeyPrefix)).
		Build()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build scan expression")
	}

	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName:                 aws.String(r.table),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})

	list := &entity.UserList{Data: []*entity.User{}}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "scan users")
		}

		var items []userItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal users")
		}
		for i := range items {
			list.Data = append(list.Data, items[i].toEntity())
		}
	}
	list.Count = len(list.Data)

	return list, nil
}

func (r *userRepository) AddToken(ctx context.Context, userName, token string) error {
	update := r.writeStamp().Add(expression.Name(attrTokens), expression.Value(tokenSet{token}))
	_, err := r.updateItem(ctx, userName, update, types.ReturnValueNone)

	return err
}

func (r *userRepository) RemoveToken(ctx context.Context, userName, token string) error {
	update := r.writeStamp().Delete(expression.Name(attrTokens), expression.Value(tokenSet{token}))
	_, err := r.updateItem(ctx, userName, update, types.ReturnValueNone)

	return err
}

func (r *userRepository) UpdatePasswordHash(ctx context.Context, userName, hash string) error {
	update := r.writeStamp().Set(expression.Name(attrPassword), expression.Value(hash))
	_, err := r.updateItem(ctx, userName, update, types.ReturnValueNone)

	return err
}

func (r *userRepository) FindByToken(ctx context.Context, token string) (*entity.User, error) {
	claims, err := r.tokenService.Decode(token)
	if err != nil {
		return nil, domainerrors.ErrInvalidToken.WrapMessage("decode")
	}

	user, err := r.FindByUserName(ctx, claims.UserName)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrNotFound) {
			r.logger.WarnContext(ctx, "Token subject lookup failed", slog.Any("error", err))
		}

		return nil, domainerrors.ErrInvalidToken.WrapMessage("unknown subject")
	}
	if !user.HasToken(token) {
		return nil, domainerrors.ErrInvalidToken.WrapMessage("token revoked")
	}

	return user, nil
}

// updateItem runs a conditional update on an existing user. A missing user
// is reported as ErrNotFound.
func (r *userRepository) updateItem(
	ctx context.Context,
	userName string,
	update expression.UpdateBuilder,
	returnValues types.ReturnValue,
) (*dynamodb.UpdateItemOutput, error) {
	expr, err := expression.NewBuilder().
		WithCondition(existsCondition()).
		WithUpdate(update).
		Build()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build update expression")
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       userKey(userName),
		ConditionExpression:       expr.Condition(),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              returnValues,
	})
	if err != nil {
		return nil, classify(err, "update user "+userName, domainerrors.ErrNotFound)
	}

	return out, nil
}
