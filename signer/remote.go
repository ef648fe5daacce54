package signer

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/inscription-c/pins/inscription"
	"github.com/inscription-c/pins/signer/server/handle/api"
	"github.com/pkg/errors"
)

// RemoteSigner forwards sign requests to a signer server.
type RemoteSigner struct {
	url    string
	token  string
	client *http.Client
}

type RemoteOption func(*RemoteSigner)

// WithHTTPClient replaces the default client with a 30 second timeout.
func WithHTTPClient(client *http.Client) RemoteOption {
	return func(s *RemoteSigner) {
		s.client = client
	}
}

// WithToken sends token as a bearer credential with every request.
func WithToken(token string) RemoteOption {
	return func(s *RemoteSigner) {
		s.token = token
	}
}

func NewRemoteSigner(url string, opts ...RemoteOption) *RemoteSigner {
	s := &RemoteSigner{
		url:    strings.TrimRight(url, "/"),
		client: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RemoteSigner) SignPsbt(ctx context.Context, psbtHex string) (*inscription.SignResult, error) {
	body, err := json.Marshal(&api.SignReq{PsbtHex: psbtHex})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url+"/sign", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res := &inscription.SignResult{}
	if err := s.do(req, res); err != nil {
		return nil, err
	}
	return res, nil
}

// PubKey fetches the public key the server signs with.
func (s *RemoteSigner) PubKey(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url+"/pubkey", nil)
	if err != nil {
		return nil, err
	}
	res := &api.PubKeyResp{}
	if err := s.do(req, res); err != nil {
		return nil, err
	}
	pk, err := hex.DecodeString(res.PubKey)
	if err != nil {
		return nil, errors.Wrap(err, "decode pubkey")
	}
	return pk, nil
}

func (s *RemoteSigner) do(req *http.Request, data interface{}) error {
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", req.Method, req.URL.Path)
	}
	defer resp.Body.Close()

	out := &api.Resp{Data: data}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "%s %s: status %d", req.Method, req.URL.Path, resp.StatusCode)
	}
	if out.ErrNo != api.CodeSuccess {
		return errors.Errorf("%s %s: %d %s", req.Method, req.URL.Path, out.ErrNo, out.ErrMsg)
	}
	return nil
}
