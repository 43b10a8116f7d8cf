package sms

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type fakeCreator struct {
	params *twilioApi.CreateMessageParams
	msg    *twilioApi.ApiV2010Message
	err    error
}

func (f *fakeCreator) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	f.params = params
	return f.msg, f.err
}

func strPtr(s string) *string { return &s }

func TestTwilioGatewaySend(t *testing.T) {
	creator := &fakeCreator{msg: &twilioApi.ApiV2010Message{Status: strPtr("queued")}}
	gateway := &TwilioGateway{api: creator, from: "+15550009999"}

	accepted, err := gateway.Send("+15550001234", "hello")
	require.NoError(t, err)
	assert.True(t, accepted)

	require.NotNil(t, creator.params)
	assert.Equal(t, "+15550001234", *creator.params.To)
	assert.Equal(t, "+15550009999", *creator.params.From)
	assert.Equal(t, "hello", *creator.params.Body)
}

func TestTwilioGatewayFailedStatus(t *testing.T) {
	creator := &fakeCreator{msg: &twilioApi.ApiV2010Message{Status: strPtr("failed")}}
	gateway := &TwilioGateway{api: creator, from: "+15550009999"}

	accepted, err := gateway.Send("+15550001234", "hello")
	require.NoError(t, err)
	assert.False(t, accepted)
}

func TestTwilioGatewayAPIError(t *testing.T) {
	creator := &fakeCreator{err: errors.New("401 unauthorized")}
	gateway := &TwilioGateway{api: creator, from: "+15550009999"}

	accepted, err := gateway.Send("+15550001234", "hello")
	require.Error(t, err)
	assert.False(t, accepted)
}
