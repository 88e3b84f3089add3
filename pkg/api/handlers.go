package api

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/segmentio/ksuid"
	"github.com/ssargent/portbin/pkg/codec"
	"github.com/ssargent/portbin/pkg/storage"
	"go.uber.org/zap"
)

// maxBodyBytes bounds request bodies; a record needs far less
const maxBodyBytes = 1 << 12

// Server holds the API server state
type Server struct {
	store   RecordStore
	config  ServerConfig
	metrics *Metrics
	logger  *zap.Logger
}

// NewServer creates a new API server
func NewServer(store RecordStore, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		store:   store,
		config:  config,
		metrics: metrics,
		logger:  Logger(),
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleEncode turns a JSON record into its 8 wire bytes
func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.readRecordBody(w, r)
	if !ok {
		s.metrics.RecordCodecOperation("encode", false, false, 0)
		return
	}

	wire := codec.EncodeRecord(rec)
	s.metrics.RecordCodecOperation("encode", true, false, len(wire))

	w.Header().Set("Content-Type", ContentTypeBinary)
	w.Header().Set("Content-Length", strconv.Itoa(len(wire)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(wire[:])
}

// handleDecode turns a binary body into a JSON record
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.metrics.RecordCodecOperation("decode", false, false, 0)
		sendError(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var rec codec.Record
	if err := rec.UnmarshalBinary(body); err != nil {
		s.metrics.RecordCodecOperation("decode", false, errors.Is(err, codec.ErrTruncated), len(body))
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.metrics.RecordCodecOperation("decode", true, false, len(body))
	sendSuccess(w, RecordResponse{Wire: hex.EncodeToString(body), Record: toBody(rec)})
}

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.readRecordBody(w, r)
	if !ok {
		return
	}

	start := time.Now()
	id, err := s.store.Create(rec)
	s.metrics.RecordStorageOperation("create", err == nil, time.Since(start))
	if err != nil {
		s.logger.Error("failed to store record", zap.Stringer("record", rec), zap.Error(err))
		sendError(w, "Failed to store record", http.StatusInternalServerError)
		return
	}

	s.metrics.RecordCodecOperation("encode", true, false, codec.RecordSize)
	sendJSON(w, http.StatusCreated, newRecordResponse(id, rec))
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := s.parseKey(w, r)
	if !ok {
		return
	}

	if strings.Contains(r.Header.Get("Accept"), ContentTypeBinary) {
		s.sendRawRecord(w, id)
		return
	}

	start := time.Now()
	rec, err := s.store.Read(id)
	s.metrics.RecordStorageOperation("read", err == nil || errors.Is(err, storage.ErrNotFound), time.Since(start))
	if err != nil {
		s.sendStoreError(w, id, err)
		return
	}

	s.metrics.RecordCodecOperation("decode", true, false, codec.RecordSize)
	sendSuccess(w, newRecordResponse(id, rec))
}

// sendRawRecord serves the stored wire bytes of id once they check out as a record
func (s *Server) sendRawRecord(w http.ResponseWriter, id ksuid.KSUID) {
	start := time.Now()
	wire, err := s.store.ReadRaw(id)
	s.metrics.RecordStorageOperation("read", err == nil || errors.Is(err, storage.ErrNotFound), time.Since(start))
	if err != nil {
		s.sendStoreError(w, id, err)
		return
	}

	var rec codec.Record
	if err := rec.UnmarshalBinary(wire); err != nil {
		s.sendStoreError(w, id, fmt.Errorf("record %s: %w", id, err))
		return
	}
	s.metrics.RecordCodecOperation("decode", true, false, len(wire))

	w.Header().Set("Content-Type", ContentTypeBinary)
	w.Header().Set("Content-Length", strconv.Itoa(len(wire)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(wire)
}

func (s *Server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := s.parseKey(w, r)
	if !ok {
		return
	}

	rec, ok := s.readRecordBody(w, r)
	if !ok {
		return
	}

	start := time.Now()
	err := s.store.Update(id, rec)
	s.metrics.RecordStorageOperation("update", err == nil || errors.Is(err, storage.ErrNotFound), time.Since(start))
	if err != nil {
		s.sendStoreError(w, id, err)
		return
	}

	s.metrics.RecordCodecOperation("encode", true, false, codec.RecordSize)
	sendSuccess(w, newRecordResponse(id, rec))
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := s.parseKey(w, r)
	if !ok {
		return
	}

	start := time.Now()
	err := s.store.Delete(id)
	s.metrics.RecordStorageOperation("delete", err == nil || errors.Is(err, storage.ErrNotFound), time.Since(start))
	if err != nil {
		s.sendStoreError(w, id, err)
		return
	}

	sendSuccess(w, map[string]string{"key": id.String()})
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			sendError(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	start := time.Now()
	entries, err := s.store.List(limit)
	s.metrics.RecordStorageOperation("list", err == nil, time.Since(start))
	if err != nil {
		s.logger.Error("failed to list records", zap.Error(err))
		sendError(w, "Failed to list records", http.StatusInternalServerError)
		return
	}

	records := make([]RecordResponse, 0, len(entries))
	for _, e := range entries {
		records = append(records, newRecordResponse(e.Key, e.Record))
	}
	sendSuccess(w, records)
}

func (s *Server) readRecordBody(w http.ResponseWriter, r *http.Request) (codec.Record, bool) {
	var body RecordBody
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		sendError(w, "Invalid JSON in request body", http.StatusBadRequest)
		return codec.Record{}, false
	}

	rec, err := body.record()
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return codec.Record{}, false
	}
	return rec, true
}

func (s *Server) parseKey(w http.ResponseWriter, r *http.Request) (ksuid.KSUID, bool) {
	id, err := ksuid.Parse(chi.URLParam(r, "key"))
	if err != nil {
		sendError(w, "Invalid record key", http.StatusBadRequest)
		return ksuid.Nil, false
	}
	return id, true
}

func (s *Server) sendStoreError(w http.ResponseWriter, id ksuid.KSUID, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		sendError(w, "Record not found", http.StatusNotFound)
	case errors.Is(err, codec.ErrTruncated):
		s.metrics.RecordCodecOperation("decode", false, true, 0)
		s.logger.Error("stored record is truncated", zap.Stringer("key", id), zap.Error(err))
		sendError(w, err.Error(), http.StatusInternalServerError)
	default:
		s.logger.Error("record storage failed", zap.Stringer("key", id), zap.Error(err))
		sendError(w, "Record storage failed", http.StatusInternalServerError)
	}
}

func newRecordResponse(id ksuid.KSUID, rec codec.Record) RecordResponse {
	wire := codec.EncodeRecord(rec)
	return RecordResponse{
		Key:    id.String(),
		Wire:   hex.EncodeToString(wire[:]),
		Record: toBody(rec),
	}
}
