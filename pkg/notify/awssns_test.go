package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/stashbox-hq/stashbox-transfer/internal/domain"
)

type fakeSNSClient struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNSClient) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-123")}, nil
}

func TestAWSSNSNotifierNotifySuccess(t *testing.T) {
	client := &fakeSNSClient{}
	sink := &awsSNSNotifier{
		topicARN: "arn:aws:sns:::transfers",
		client:   client,
		log:      noopLogger{},
	}

	err := sink.Notify(context.Background(), Event{
		Operation: OperationDelete,
		ProfileID: "prod",
		File:      domain.File{Key: "docs/report"},
	})
	if err != nil {
		t.Fatalf("Notify returned error: %v", err)
	}
	if client.input == nil {
		t.Fatalf("client was not called")
	}
	if got := aws.ToString(client.input.TopicArn); got != "arn:aws:sns:::transfers" {
		t.Fatalf("TopicArn = %s", got)
	}
	attr, ok := client.input.MessageAttributes["operation"]
	if !ok || attr.StringValue == nil || aws.ToString(attr.StringValue) != OperationDelete {
		t.Fatalf("operation attribute missing or wrong: %#v", attr)
	}
	if attr.DataType == nil || aws.ToString(attr.DataType) != "String" {
		t.Fatalf("DataType should be String, got %#v", attr.DataType)
	}
	if client.input.Message == nil || !strings.Contains(aws.ToString(client.input.Message), `"key":"docs/report"`) {
		t.Fatalf("Message missing file key: %s", aws.ToString(client.input.Message))
	}
}

func TestAWSSNSNotifierNotifyError(t *testing.T) {
	client := &fakeSNSClient{err: errors.New("boom")}
	sink := &awsSNSNotifier{
		topicARN: "arn:aws:sns:::transfers",
		client:   client,
		log:      noopLogger{},
	}

	err := sink.Notify(context.Background(), Event{
		Operation: OperationUpload,
		File:      domain.File{Key: "docs/report"},
	})
	if err == nil {
		t.Fatalf("expected error from Notify")
	}
}
