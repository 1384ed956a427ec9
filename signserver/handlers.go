package signserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/vitalvas/textsign/log"
	"github.com/vitalvas/textsign/source"
	"github.com/vitalvas/textsign/textsign"
)

var (
	errKeyNotConfigured = errors.New("signserver: no key configured for algorithm")
	errKeyUnavailable   = errors.New("signserver: key unavailable")
)

// SignResponse is returned by POST /v1/sign/{alg}.
type SignResponse struct {
	Algorithm textsign.Algorithm `json:"algorithm"`
	Tag       string             `json:"tag"`
}

// VerifyResponse is returned by POST /v1/verify/{alg}.
type VerifyResponse struct {
	Algorithm textsign.Algorithm `json:"algorithm"`
	Valid     bool               `json:"valid"`
}

// KeysResponse is returned by POST /v1/keys/{alg}. Keys are URL-safe
// base64 without padding, in the order produced by textsign.GenerateKey.
type KeysResponse struct {
	Algorithm textsign.Algorithm `json:"algorithm"`
	Keys      []string           `json:"keys"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// writeFailure maps err to a status code and error response.
func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "body_too_large", err.Error())
	case errors.Is(err, textsign.ErrUnknownAlgorithm):
		writeError(w, http.StatusNotFound, "unknown_algorithm", err.Error())
	case errors.Is(err, textsign.ErrTagEncoding):
		writeError(w, http.StatusBadRequest, "invalid_tag", err.Error())
	case errors.Is(err, textsign.ErrSignatureFormat):
		writeError(w, http.StatusBadRequest, "invalid_signature", err.Error())
	case errors.Is(err, errKeyNotConfigured):
		writeError(w, http.StatusNotImplemented, "key_not_configured", err.Error())
	case errors.Is(err, errKeyUnavailable),
		errors.Is(err, textsign.ErrKeyLength),
		errors.Is(err, textsign.ErrKeyEncoding):
		log.Errorw("key load failed", "error", err, "request_id", RequestIDFromContext(r.Context()))
		writeError(w, http.StatusInternalServerError, "key_unavailable", "key could not be loaded")
	case errors.Is(err, textsign.ErrRead):
		writeError(w, http.StatusBadRequest, "read_failed", err.Error())
	default:
		log.Errorw("request failed", "error", err, "request_id", RequestIDFromContext(r.Context()))
		writeError(w, http.StatusInternalServerError, "internal", http.StatusText(http.StatusInternalServerError))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSign(w http.ResponseWriter, r *http.Request) {
	alg, err := textsign.ParseAlgorithm(chi.URLParam(r, "alg"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	start := time.Now()

	tag, err := s.sign(r.Body, alg)
	if err != nil {
		s.metrics.observe("sign", alg, resultError, time.Since(start).Seconds())
		writeFailure(w, r, err)
		return
	}

	s.metrics.observe("sign", alg, resultOK, time.Since(start).Seconds())
	writeJSON(w, http.StatusOK, SignResponse{Algorithm: alg, Tag: tag})
}

func (s *Server) sign(body io.Reader, alg textsign.Algorithm) (string, error) {
	path := s.cfg.Keys.Blake3
	if alg == textsign.AlgorithmEd25519 {
		path = s.cfg.Keys.Ed25519Signing
	}

	key, err := readKey(path)
	if err != nil {
		return "", err
	}

	return textsign.Sign(body, key, alg)
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	alg, err := textsign.ParseAlgorithm(chi.URLParam(r, "alg"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	start := time.Now()

	valid, err := s.verify(r.Body, alg, r.URL.Query().Get("tag"))
	if err != nil {
		s.metrics.observe("verify", alg, resultError, time.Since(start).Seconds())
		writeFailure(w, r, err)
		return
	}

	result := resultInvalid
	if valid {
		result = resultValid
	}

	s.metrics.observe("verify", alg, result, time.Since(start).Seconds())
	writeJSON(w, http.StatusOK, VerifyResponse{Algorithm: alg, Valid: valid})
}

func (s *Server) verify(body io.Reader, alg textsign.Algorithm, tag string) (bool, error) {
	path := s.cfg.Keys.Blake3
	if alg == textsign.AlgorithmEd25519 {
		path = s.cfg.Keys.Ed25519Verifying
	}

	key, err := readKey(path)
	if err != nil {
		return false, err
	}

	return textsign.Verify(body, key, alg, tag)
}

func (s *Server) handleKeys(w http.ResponseWriter, r *http.Request) {
	alg, err := textsign.ParseAlgorithm(chi.URLParam(r, "alg"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	gen := s.generator
	if v := r.URL.Query().Get("printable"); v != "" {
		printable, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_parameter", fmt.Sprintf("printable: %v", err))
			return
		}

		gen.Printable = printable
	}

	start := time.Now()

	keys, err := gen.Generate(alg)
	if err != nil {
		s.metrics.observe("generate", alg, resultError, time.Since(start).Seconds())
		writeFailure(w, r, err)
		return
	}

	s.metrics.observe("generate", alg, resultOK, time.Since(start).Seconds())

	resp := KeysResponse{Algorithm: alg, Keys: make([]string, len(keys))}
	for i, k := range keys {
		resp.Keys[i] = textsign.EncodeTag(k)
	}

	writeJSON(w, http.StatusOK, resp)
}

// readKey loads the key file at path. Rotated keys apply to the next request.
func readKey(path string) (io.Reader, error) {
	if path == source.Stdin {
		log.Warnf("key path %q is not allowed for the signing service", path)
		return nil, errKeyNotConfigured
	}

	if path == "" {
		return nil, errKeyNotConfigured
	}

	b, err := source.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errKeyUnavailable, err)
	}

	return bytes.NewReader(b), nil
}
