package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	"abarrote/internal/core/appctx"
)

// AuditAction is the type of audited operation.
type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

// CompressionAlgo marks how the stored payload is encoded.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// AuditEntry is one recorded mutation of an entity.
type AuditEntry struct {
	ID                int64           `db:"id" json:"id"`
	Entidad           string          `db:"entidad" json:"entidad"`
	EntidadID         int64           `db:"entidad_id" json:"entidad_id"`
	Action            AuditAction     `db:"action" json:"action"`
	Usuario           string          `db:"usuario" json:"usuario"`
	Changes           json.RawMessage `db:"changes" json:"changes,omitempty"`
	ChangesCompressed []byte          `db:"changes_compressed" json:"-"`
	CompressionAlgo   CompressionAlgo `db:"compression_algo" json:"-"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
}

// AuditService records entity mutations. Large payloads are stored
// zstd-compressed; small ones stay as plain JSON for ad-hoc SQL
// inspection.
type AuditService struct {
	txm               *TxManager
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int
}

// NewAuditService creates an audit service.
func NewAuditService(txm *TxManager) (*AuditService, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &AuditService{
		txm:               txm,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: 10 * 1024,
	}, nil
}

// Record stores one mutation. The payload is marshalled to JSON and
// attributed to the acting user from the context.
func (s *AuditService) Record(ctx context.Context, entidad string, entidadID int64, action AuditAction, payload any) error {
	changes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	entry := AuditEntry{
		Entidad:         entidad,
		EntidadID:       entidadID,
		Action:          action,
		Usuario:         appctx.ActingUser(ctx),
		Changes:         changes,
		CompressionAlgo: CompressionNone,
	}

	if len(entry.Changes) > s.compressThreshold {
		entry.ChangesCompressed = s.encoder.EncodeAll(entry.Changes, nil)
		entry.Changes = nil
		entry.CompressionAlgo = CompressionZstd
	}

	sql := `
		INSERT INTO auditoria (entidad, entidad_id, action, usuario, changes, changes_compressed, compression_algo)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.txm.GetQuerier(ctx).Exec(ctx, sql,
		entry.Entidad, entry.EntidadID, entry.Action, entry.Usuario,
		entry.Changes, entry.ChangesCompressed, entry.CompressionAlgo)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}

	return nil
}

// List returns the recorded mutations of one entity, newest first,
// with compressed payloads inflated.
func (s *AuditService) List(ctx context.Context, entidad string, entidadID int64) ([]AuditEntry, error) {
	sql := `
		SELECT id, entidad, entidad_id, action, usuario, changes, changes_compressed, compression_algo, created_at
		FROM auditoria
		WHERE entidad = $1 AND entidad_id = $2
		ORDER BY created_at DESC
	`

	rows, err := s.txm.GetQuerier(ctx).Query(ctx, sql, entidad, entidadID)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var e AuditEntry
		if err := rows.Scan(&e.ID, &e.Entidad, &e.EntidadID, &e.Action, &e.Usuario,
			&e.Changes, &e.ChangesCompressed, &e.CompressionAlgo, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}

		if e.CompressionAlgo == CompressionZstd && len(e.ChangesCompressed) > 0 {
			inflated, err := s.decoder.DecodeAll(e.ChangesCompressed, nil)
			if err != nil {
				return nil, fmt.Errorf("decompress audit entry %d: %w", e.ID, err)
			}
			e.Changes = inflated
			e.ChangesCompressed = nil
			e.CompressionAlgo = CompressionNone
		}

		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}

	return entries, nil
}

// Close releases the codec resources.
func (s *AuditService) Close() {
	_ = s.encoder.Close()
	s.decoder.Close()
}
