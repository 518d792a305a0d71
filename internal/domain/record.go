package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Record одна строка CSV: имя колонки -> значение ячейки
type Record map[string]string

// Dataset упорядоченный набор записей одной загрузки.
// Columns задаёт порядок полей, определённый строкой заголовка.
type Dataset struct {
	Columns []string
	Records []Record
}

// NewDataset создаёт пустой набор с заданными колонками
func NewDataset(columns []string) *Dataset {
	return &Dataset{
		Columns: columns,
		Records: make([]Record, 0),
	}
}

// Len возвращает количество записей
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// MarshalJSON кодирует набор как массив объектов с ключами в порядке колонок
func (d *Dataset) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("[]"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, rec := range d.Records {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		written := 0
		for _, col := range d.Columns {
			val, ok := rec[col]
			if !ok {
				continue
			}
			if written > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(col)
			if err != nil {
				return nil, err
			}
			value, err := json.Marshal(val)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(value)
			written++
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')

	return buf.Bytes(), nil
}

// UnmarshalJSON читает массив объектов, сохраняя порядок ключей первой встречи.
// Нестроковые скаляры приводятся к строке, null становится пустой строкой.
func (d *Dataset) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*d = Dataset{Records: make([]Record, 0)}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return fmt.Errorf("dataset must be a JSON array")
	}

	result := Dataset{Records: make([]Record, 0)}
	seen := make(map[string]bool)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if delim, ok := tok.(json.Delim); !ok || delim != '{' {
			return fmt.Errorf("dataset element must be a JSON object")
		}

		rec := make(Record)
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return err
			}
			key, _ := keyTok.(string)

			valTok, err := dec.Token()
			if err != nil {
				return err
			}
			val, err := scalarString(valTok)
			if err != nil {
				return fmt.Errorf("field %q: %w", key, err)
			}

			rec[key] = val
			if !seen[key] {
				seen[key] = true
				result.Columns = append(result.Columns, key)
			}
		}
		// закрывающая '}'
		if _, err := dec.Token(); err != nil {
			return err
		}

		result.Records = append(result.Records, rec)
	}
	// закрывающая ']'
	if _, err := dec.Token(); err != nil {
		return err
	}

	*d = result
	return nil
}

func scalarString(tok json.Token) (string, error) {
	switch v := tok.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("nested values are not supported")
	}
}
