package dynamodb

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"dentist/internal/domain/entity"
	"dentist/internal/domain/repository"
)

const (
	attrPK       = "pk"
	attrSK       = "sk"
	attrType     = "type"
	attrPassword = "password"
	attrTokens   = "tokens"
	attrRole     = "role"
	attrVersion  = "version"
	attrCreated  = "created"
	attrModified = "modified"

	itemTypeUser = "user"
)

// userItem is the stored shape of a user.
type userItem struct {
	PK         string   `dynamodbav:"pk"`
	SK         string   `dynamodbav:"sk"`
	Type       string   `dynamodbav:"type"`
	UserName   string   `dynamodbav:"userName"`
	Name       string   `dynamodbav:"name,omitempty"`
	Surname    string   `dynamodbav:"surname,omitempty"`
	Telephone  string   `dynamodbav:"telephone,omitempty"`
	FiscalCode string   `dynamodbav:"fiscalCode,omitempty"`
	BornDate   string   `dynamodbav:"bornDate,omitempty"`
	Password   string   `dynamodbav:"password,omitempty"`
	Tokens     []string `dynamodbav:"tokens,stringset,omitempty"`
	Role       string   `dynamodbav:"role"`
	Version    int      `dynamodbav:"version"`
	Created    string   `dynamodbav:"created"`
	Modified   string   `dynamodbav:"modified"`
}

func userKeyValue(userName string) string {
	return repository.UserKeyPrefix + userName
}

func userKey(userName string) map[string]types.AttributeValue {
	k := userKeyValue(userName)

	return map[string]types.AttributeValue{
		attrPK: &types.AttributeValueMemberS{Value: k},
		attrSK: &types.AttributeValueMemberS{Value: k},
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}

	return t
}

func toItem(u *entity.User) *userItem {
	return &userItem{
		PK:         userKeyValue(u.UserName),
		SK:         userKeyValue(u.UserName),
		Type:       itemTypeUser,
		UserName:   u.UserName,
		Name:       u.Name,
		Surname:    u.Surname,
		Telephone:  u.Telephone,
		FiscalCode: u.FiscalCode,
		BornDate:   u.BornDate,
		Password:   u.PasswordHash,
		Tokens:     u.Tokens,
		Role:       entity.RoleOrDefault(u.Role).String(),
		Version:    u.Version,
		Created:    formatTime(u.Created),
		Modified:   formatTime(u.Modified),
	}
}

func (i *userItem) toEntity() *entity.User {
	return &entity.User{
		UserName:     i.UserName,
		Name:         i.Name,
		Surname:      i.Surname,
		Telephone:    i.Telephone,
		FiscalCode:   i.FiscalCode,
		BornDate:     i.BornDate,
		PasswordHash: i.Password,
		Tokens:       i.Tokens,
		Role:         entity.RoleOrDefault(entity.Role(i.Role)),
		Version:      i.Version,
		Created:      parseTime(i.Created),
		Modified:     parseTime(i.Modified),
	}
}

// tokenSet marshals as a DynamoDB string set, the operand type ADD and
// DELETE need on the tokens attribute.
type tokenSet []string

func (s tokenSet) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	return &types.AttributeValueMemberSS{Value: s}, nil
}
