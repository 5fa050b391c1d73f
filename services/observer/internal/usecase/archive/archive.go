package archive

import (
	"bytes"
	"context"
	"fmt"

	"github.com/klauspost/compress/zip"

	"github.com/muhammadchandra19/orderbook-observer/pkg/errors"
	"github.com/muhammadchandra19/orderbook-observer/pkg/logger"
	v1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/archive/v1"
)

// Usecase bundles table sets into per-format zip archives.
type Usecase struct {
	encoders map[v1.Format]encoder
	logger   logger.Interface
}

// NewUsecase creates a new archive usecase. fontSize applies to document exports.
func NewUsecase(layouts Layouts, fontSize float64, logger logger.Interface) *Usecase {
	return &Usecase{
		encoders: map[v1.Format]encoder{
			v1.FormatCSV:  encodeCSV,
			v1.FormatXLSX: encodeXLSX,
			v1.FormatPDF:  newPDFEncoder(layouts, fontSize),
		},
		logger: logger,
	}
}

// Build serializes every table into one entry <name>.<format>. A table that
// fails to serialize aborts the whole archive; no partial bundle is returned.
func (u *Usecase) Build(ctx context.Context, tables v1.TableSet, format v1.Format) ([]byte, error) {
	encode, ok := u.encoders[format]
	if !ok {
		return nil, errors.NewErrorDetails(fmt.Sprintf("unknown archive format %q", format), string(errors.GeneralBadRequestError), "format")
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, table := range tables {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := encode(table)
		if err != nil {
			u.logger.ErrorContext(ctx, err,
				logger.NewField("table", table.Name),
				logger.NewField("format", string(format)),
			)
			return nil, errors.NewTracer(fmt.Sprintf("failed to serialize %s as %s", table.Name, format)).
				ForTable(table.Name).
				ForFormat(string(format)).
				Wrap(errors.NewErrorDetails(err.Error(), string(errors.SerializationFailure), table.Name))
		}

		w, err := zw.Create(format.EntryName(table.Name))
		if err != nil {
			return nil, errors.TracerFromError(err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, errors.TracerFromError(err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, errors.TracerFromError(err)
	}

	u.logger.DebugContext(ctx, "archive built",
		logger.NewField("format", string(format)),
		logger.NewField("tables", len(tables)),
		logger.NewField("bytes", buf.Len()),
	)
	return buf.Bytes(), nil
}
