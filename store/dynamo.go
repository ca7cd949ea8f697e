package store

import (
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/scorepad/model"
	"github.com/pkg/errors"
)

// Dynamo stores compositions in a DynamoDB table whose partition key is PK.
type Dynamo struct {
	client dynamodbiface.DynamoDBAPI
	table  string
	now    func() time.Time
}

func NewDynamo(region, endpoint, table string) (*Dynamo, error) {
	cfg := &aws.Config{Region: aws.String(region)}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "could not create a new DynamoDB session")
	}
	return &Dynamo{client: dynamodb.New(sess), table: table, now: time.Now}, nil
}

func itemFromComposition(c model.Composition) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		"PK":        {S: aws.String(c.ID)},
		"Title":     {S: aws.String(c.Title)},
		"Notation":  {S: aws.String(c.Notation)},
		"UserID":    {S: aws.String(c.UserID)},
		"IsPublic":  {BOOL: aws.Bool(c.IsPublic)},
		"CreatedAt": {S: aws.String(c.CreatedAt.Format(time.RFC3339Nano))},
		"UpdatedAt": {S: aws.String(c.UpdatedAt.Format(time.RFC3339Nano))},
	}
}

func str(item map[string]*dynamodb.AttributeValue, key string) string {
	if v, ok := item[key]; ok && v.S != nil {
		return *v.S
	}
	return ""
}

func compositionFromItem(item map[string]*dynamodb.AttributeValue) model.Composition {
	c := model.Composition{
		ID:       str(item, "PK"),
		Title:    str(item, "Title"),
		Notation: str(item, "Notation"),
		UserID:   str(item, "UserID"),
	}
	if v, ok := item["IsPublic"]; ok && v.BOOL != nil {
		c.IsPublic = *v.BOOL
	}
	c.CreatedAt, _ = time.Parse(time.RFC3339Nano, str(item, "CreatedAt"))
	c.UpdatedAt, _ = time.Parse(time.RFC3339Nano, str(item, "UpdatedAt"))
	return c
}

func key(id string) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{"PK": {S: aws.String(id)}}
}

func isConditionFailure(err error) bool {
	aerr, ok := err.(awserr.Error)
	return ok && aerr.Code() == dynamodb.ErrCodeConditionalCheckFailedException
}

func (d *Dynamo) Create(c model.Composition) (model.Composition, error) {
	if err := validate(c); err != nil {
		return model.Composition{}, err
	}
	c.ID = NewID()
	c.CreatedAt = d.now().UTC()
	c.UpdatedAt = c.CreatedAt

	_, err := d.client.PutItem(&dynamodb.PutItemInput{
		TableName:           aws.String(d.table),
		Item:                itemFromComposition(c),
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		return model.Composition{}, errors.Wrap(err, "error from DynamoDB")
	}
	return c, nil
}

func (d *Dynamo) Get(id string) (model.Composition, error) {
	out, err := d.client.GetItem(&dynamodb.GetItemInput{
		TableName: aws.String(d.table),
		Key:       key(id),
	})
	if err != nil {
		return model.Composition{}, errors.Wrap(err, "error from DynamoDB")
	}
	if len(out.Item) == 0 {
		return model.Composition{}, ErrNotFound
	}
	return compositionFromItem(out.Item), nil
}

func (d *Dynamo) Update(c model.Composition) (model.Composition, error) {
	if err := validate(c); err != nil {
		return model.Composition{}, err
	}
	old, err := d.Get(c.ID)
	if err != nil {
		return model.Composition{}, err
	}
	c.CreatedAt = old.CreatedAt
	c.UpdatedAt = d.now().UTC()

	_, err = d.client.PutItem(&dynamodb.PutItemInput{
		TableName:           aws.String(d.table),
		Item:                itemFromComposition(c),
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if isConditionFailure(err) {
		return model.Composition{}, ErrNotFound
	}
	if err != nil {
		return model.Composition{}, errors.Wrap(err, "error from DynamoDB")
	}
	return c, nil
}

func (d *Dynamo) Delete(id string) error {
	_, err := d.client.DeleteItem(&dynamodb.DeleteItemInput{
		TableName:           aws.String(d.table),
		Key:                 key(id),
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if isConditionFailure(err) {
		return ErrNotFound
	}
	return errors.Wrap(err, "error from DynamoDB")
}

func (d *Dynamo) List(userID string) ([]model.Composition, error) {
	input := &dynamodb.ScanInput{
		TableName:        aws.String(d.table),
		FilterExpression: aws.String("IsPublic = :public OR UserID = :user"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":public": {BOOL: aws.Bool(true)},
			":user":   {S: aws.String(userID)},
		},
	}
	if userID == "" {
		input.FilterExpression = aws.String("IsPublic = :public")
		delete(input.ExpressionAttributeValues, ":user")
	}

	res := make([]model.Composition, 0)
	for {
		out, err := d.client.Scan(input)
		if err != nil {
			return nil, errors.Wrap(err, "error from DynamoDB")
		}
		for _, item := range out.Items {
			res = append(res, compositionFromItem(item))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	sortByCreation(res)
	return res, nil
}
