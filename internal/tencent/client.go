// Package tencent implements tts.Synthesizer on top of the Tencent Cloud
// TextToVoice API (tts/v20190823).
package tencent

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/go-tencent-tts/internal/config"
	"github.com/example/go-tencent-tts/internal/tts"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common"
	sdkerrors "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/errors"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/profile"
	ttsapi "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/tts/v20190823"
)

// textToVoicer is the subset of *ttsapi.Client used here.
type textToVoicer interface {
	TextToVoiceWithContext(ctx context.Context, req *ttsapi.TextToVoiceRequest) (*ttsapi.TextToVoiceResponse, error)
}

type Client struct {
	api textToVoicer
}

// NewClient builds an SDK client for region signed with creds.
func NewClient(creds tts.Credentials, region string, cc config.ClientConfig) (*Client, error) {
	cpf := profile.NewClientProfile()
	if cc.Endpoint != "" {
		cpf.HttpProfile.Endpoint = cc.Endpoint
	}
	if cc.TimeoutSeconds > 0 {
		cpf.HttpProfile.ReqTimeout = cc.TimeoutSeconds
	}

	api, err := ttsapi.NewClient(common.NewCredential(creds.SecretID, creds.SecretKey), region, cpf)
	if err != nil {
		return nil, fmt.Errorf("create tts client: %w", err)
	}

	return &Client{api: api}, nil
}

// Synthesize sends one TextToVoice request and returns the base64 audio.
func (c *Client) Synthesize(ctx context.Context, req tts.Request) (string, error) {
	resp, err := c.api.TextToVoiceWithContext(ctx, buildRequest(req))
	if err != nil {
		return "", mapError(err)
	}
	if resp == nil || resp.Response == nil || resp.Response.Audio == nil {
		return "", errors.New("text to voice: response carries no audio")
	}

	return *resp.Response.Audio, nil
}

func buildRequest(req tts.Request) *ttsapi.TextToVoiceRequest {
	r := ttsapi.NewTextToVoiceRequest()
	r.Text = common.StringPtr(req.Text)
	r.SessionId = common.StringPtr(req.SessionID)
	r.ModelType = common.Int64Ptr(tts.ModelType)
	r.Codec = common.StringPtr(tts.CodecPCM)
	r.SampleRate = common.Uint64Ptr(uint64(req.SampleRate))
	r.Speed = common.Float64Ptr(float64(req.Speed))
	r.Volume = common.Float64Ptr(float64(req.Volume))
	r.PrimaryLanguage = common.Int64Ptr(int64(req.PrimaryLanguage))
	r.VoiceType = common.Int64Ptr(req.Voice.VoiceType())
	if clone := req.Voice.FastVoiceType(); clone != "" {
		r.FastVoiceType = common.StringPtr(clone)
	}

	return r
}

// mapError turns SDK failures into *tts.ServiceError so callers see the
// service's own code and message.
func mapError(err error) error {
	var sdkErr *sdkerrors.TencentCloudSDKError
	if errors.As(err, &sdkErr) {
		return &tts.ServiceError{
			Code:      sdkErr.GetCode(),
			Message:   sdkErr.GetMessage(),
			RequestID: sdkErr.GetRequestId(),
		}
	}

	return err
}
