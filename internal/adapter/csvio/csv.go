package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/plastinin/bizreport/internal/domain"
)

const utf8BOM = "\uFEFF"

// Codec разбирает CSV с заголовком в набор записей и кодирует обратно
type Codec struct{}

// NewCodec создаёт новый Codec
func NewCodec() *Codec {
	return &Codec{}
}

// Parse читает поток построчно и возвращает полностью собранный Dataset.
// Пустой файл и файл только с заголовком дают пустой набор без ошибки.
func (c *Codec) Parse(r io.Reader) (*domain.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return domain.NewDataset(nil), nil
	}
	if err != nil {
		return nil, &domain.ParseError{Err: err}
	}

	header[0] = strings.TrimPrefix(header[0], utf8BOM)
	ds := domain.NewDataset(uniqueColumns(header))
	inHeader := make(map[string]bool, len(header))
	for _, col := range header {
		inHeader[col] = true
	}
	overflow := make(map[int]string)

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &domain.ParseError{Err: err}
		}

		// Повтор имени в заголовке: позиция первая, значение последнее
		rec := make(domain.Record, len(ds.Columns))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			} else if _, ok := rec[col]; !ok {
				rec[col] = ""
			}
		}

		// Лишние ячейки получают имя по индексу
		for i := len(header); i < len(row); i++ {
			col, ok := overflow[i]
			if !ok {
				col = overflowColumn(i, inHeader)
				overflow[i] = col
				ds.Columns = append(ds.Columns, col)
			}
			rec[col] = row[i]
		}

		ds.Records = append(ds.Records, rec)
	}

	return ds, nil
}

// uniqueColumns оставляет первое вхождение каждого имени
func uniqueColumns(header []string) []string {
	seen := make(map[string]bool, len(header))
	columns := make([]string, 0, len(header))
	for _, col := range header {
		if seen[col] {
			continue
		}
		seen[col] = true
		columns = append(columns, col)
	}
	return columns
}

// overflowColumn имя _<i>, не совпадающее с колонкой заголовка
func overflowColumn(i int, inHeader map[string]bool) string {
	base := fmt.Sprintf("_%d", i)
	col := base
	for n := 1; inHeader[col]; n++ {
		col = fmt.Sprintf("%s_%d", base, n)
	}
	return col
}

// Write кодирует набор в CSV в порядке колонок
func (c *Codec) Write(w io.Writer, ds *domain.Dataset) error {
	writer := csv.NewWriter(w)

	if ds == nil || len(ds.Columns) == 0 {
		writer.Flush()
		return writer.Error()
	}

	if err := writer.Write(ds.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	row := make([]string, len(ds.Columns))
	for i, rec := range ds.Records {
		for j, col := range ds.Columns {
			row[j] = rec[col]
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
