package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/dmitrijs2005/docvault/internal/client/models"
	"github.com/dmitrijs2005/docvault/internal/common"
	"github.com/dmitrijs2005/docvault/internal/logging"
	"github.com/dmitrijs2005/docvault/internal/netx"
	"github.com/google/uuid"
)

const (
	registerPath    = "/registerUser"
	generateOTPPath = "/generateOTP"
	validateOTPPath = "/validateOTP"
	searchPath      = "/searchDocument"
	uploadPath      = "/saveDocumentEntry"

	maxResponseSize = 4 << 20
)

const (
	registerFallback    = "Unable to register number."
	generateOTPFallback = "Failed to send OTP"
	validateOTPFallback = "Invalid OTP"
	searchFallback      = "Failed to search documents"
	uploadFallback      = "Failed to upload document"
)

// HTTPClient implements Client over JSON/HTTP.
type HTTPClient struct {
	baseURL      string
	httpClient   *http.Client
	log          logging.Logger
	newRequestID func() string
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout limits every request, body included. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		c.httpClient.Timeout = d
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) {
		if l != nil {
			c.log = l
		}
	}
}

// NewHTTPClient builds a client for the API rooted at baseURL.
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{},
		log:          logging.NewNop(),
		newRequestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type registerRequest struct {
	Username     string `json:"username"`
	MobileNumber string `json:"mobile_number"`
}

type otpRequest struct {
	MobileNumber string `json:"mobile_number"`
	OTP          string `json:"otp,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type registerResponse struct {
	Status truthy          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

type validateOTPResponse struct {
	Token   string            `json:"token"`
	UserID  models.FlexString `json:"user_id"`
	Message string            `json:"message"`
}

type searchResponse struct {
	Documents *[]models.DocumentRecord `json:"documents"`
}

func (c *HTTPClient) Register(ctx context.Context, username, mobile string) error {
	resp, err := c.postJSON(ctx, registerPath, "", registerRequest{Username: username, MobileNumber: mobile})
	if err != nil {
		return mapError(err, registerFallback)
	}

	var out registerResponse
	decodeErr := json.Unmarshal(resp.body, &out)
	if resp.ok() && decodeErr == nil && bool(out.Status) {
		return nil
	}

	return resp.remoteError(stringValue(out.Data), registerFallback, decodeErr)
}

func (c *HTTPClient) GenerateOTP(ctx context.Context, mobile string) error {
	resp, err := c.postJSON(ctx, generateOTPPath, "", otpRequest{MobileNumber: mobile})
	if err != nil {
		return mapError(err, generateOTPFallback)
	}
	if resp.ok() {
		return nil
	}
	return resp.remoteError(resp.message(), generateOTPFallback, nil)
}

func (c *HTTPClient) ValidateOTP(ctx context.Context, mobile, otp string) (string, string, error) {
	resp, err := c.postJSON(ctx, validateOTPPath, "", otpRequest{MobileNumber: mobile, OTP: otp})
	if err != nil {
		return "", "", mapError(err, validateOTPFallback)
	}

	var out validateOTPResponse
	decodeErr := json.Unmarshal(resp.body, &out)
	if resp.ok() && decodeErr == nil && out.Token != "" {
		return out.Token, out.UserID.String(), nil
	}
	if resp.ok() && decodeErr == nil {
		decodeErr = fmt.Errorf("token is missing")
	}

	return "", "", resp.remoteError(out.Message, validateOTPFallback, decodeErr)
}

func (c *HTTPClient) SearchDocuments(ctx context.Context, token string, q models.SearchQuery) ([]models.DocumentRecord, error) {
	resp, err := c.postJSON(ctx, searchPath, token, q)
	if err != nil {
		return nil, mapError(err, searchFallback)
	}
	if !resp.ok() {
		return nil, resp.remoteError(resp.message(), searchFallback, nil)
	}

	var out searchResponse
	decodeErr := json.Unmarshal(resp.body, &out)
	if decodeErr == nil && out.Documents == nil {
		decodeErr = fmt.Errorf("documents are missing")
	}
	if decodeErr != nil {
		return nil, resp.remoteError("", searchFallback, decodeErr)
	}
	return *out.Documents, nil
}

func (c *HTTPClient) UploadDocument(ctx context.Context, token string, file *models.File, meta models.UploadMetadata) error {
	if file == nil {
		return fmt.Errorf("upload: file is nil")
	}

	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal upload metadata: %w", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreatePart(filePartHeader(file))
	if err != nil {
		return err
	}
	if _, err := part.Write(file.Content); err != nil {
		return err
	}
	if err := writer.WriteField("data", string(data)); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	setToken(req, token)

	resp, err := c.send(req)
	if err != nil {
		return mapError(err, uploadFallback)
	}
	if resp.ok() {
		return nil
	}
	return resp.remoteError(resp.message(), uploadFallback, nil)
}

func (c *HTTPClient) Download(ctx context.Context, fileURL string, w io.Writer) (int64, error) {
	n, err := netx.Download(ctx, c.httpClient, fileURL, w)
	if err != nil {
		return n, fmt.Errorf("download %s: %w", fileURL, err)
	}
	return n, nil
}

func (c *HTTPClient) postJSON(ctx context.Context, path, token string, payload any) (*response, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	setToken(req, token)

	return c.send(req)
}

// send executes req and reads the whole body. Only transport failures are
// returned as errors; any HTTP status is a response.
func (c *HTTPClient) send(req *http.Request) (*response, error) {
	ctx := req.Context()
	requestID := c.newRequestID()
	req.Header.Set(common.RequestIDHeaderName, requestID)

	log := c.log.With("request_id", requestID, "method", req.Method, "path", req.URL.Path)
	started := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		log.Warn(ctx, "reading response failed", "status", resp.StatusCode, "error", err)
		return nil, err
	}
	if len(body) > maxResponseSize {
		log.Warn(ctx, "response exceeds size limit", "status", resp.StatusCode, "limit", maxResponseSize)
		return nil, &RemoteError{
			Status:  resp.StatusCode,
			Message: "The server response was too large to process",
			Err:     ErrResponseTooLarge,
		}
	}

	log.Info(ctx, "request completed", "status", resp.StatusCode, "duration", time.Since(started))
	return &response{status: resp.StatusCode, body: body}, nil
}

type response struct {
	status int
	body   []byte
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// message extracts the "message" field of a JSON body, if any.
func (r *response) message() string {
	var m messageResponse
	if err := json.Unmarshal(r.body, &m); err != nil {
		return ""
	}
	return strings.TrimSpace(m.Message)
}

// remoteError builds the error for a response that was not usable. A non-nil
// decodeErr on a 2xx response marks it as malformed.
func (r *response) remoteError(msg, fallback string, decodeErr error) error {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		msg = fallback
	}
	e := &RemoteError{Status: r.status, Message: msg}
	if r.ok() && decodeErr != nil {
		e.Err = fmt.Errorf("%w: %v", ErrMalformedResponse, decodeErr)
	}
	return e
}

func setToken(req *http.Request, token string) {
	if strings.TrimSpace(token) == "" {
		return
	}
	req.Header.Set(common.TokenHeaderName, token)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func filePartHeader(f *models.File) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(f.Name)))
	contentType := f.MIMEType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)
	return h
}

// stringValue returns raw as a string when it is a JSON string.
func stringValue(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// truthy decodes a JSON value the way a loosely typed API means it: false,
// 0, "", "false", "0" and null are false; everything else is true.
type truthy bool

func (t *truthy) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0, bytes.Equal(b, []byte("null")), bytes.Equal(b, []byte("false")):
		*t = false
	case bytes.Equal(b, []byte("true")):
		*t = true
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.ToLower(strings.TrimSpace(s))
		*t = truthy(s != "" && s != "false" && s != "0")
	case b[0] == '{' || b[0] == '[':
		*t = true
	default:
		var n float64
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*t = n != 0
	}
	return nil
}
