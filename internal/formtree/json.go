package formtree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"
)

// Encode writes the tree as JSON. Record fields are emitted in insertion
// order so the stored document is byte-stable across saves of an unchanged
// tree. Date leaves are emitted in ISO form; callers that need a different
// date representation convert the tree before encoding.
func Encode(w io.Writer, n Node) error {
	var buf bytes.Buffer
	if err := encodeNode(&buf, n); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func encodeNode(buf *bytes.Buffer, n Node) error {
	switch n.Kind {
	case KindRecord:
		buf.WriteByte('{')
		for i, key := range n.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			keyJSON, err := json.Marshal(key)
			if err != nil {
				return err
			}
			buf.Write(keyJSON)
			buf.WriteByte(':')
			if err := encodeNode(buf, n.fields[key]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case KindList:
		buf.WriteByte('[')
		for i, item := range n.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeNode(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case KindString:
		data, err := json.Marshal(n.Str)
		if err != nil {
			return err
		}
		buf.Write(data)
		return nil
	case KindDate:
		data, err := json.Marshal(n.Time.Format("2006-01-02"))
		if err != nil {
			return err
		}
		buf.Write(data)
		return nil
	case KindBool:
		buf.WriteString(strconv.FormatBool(n.Bool))
		return nil
	case KindNumber:
		buf.WriteString(strconv.FormatFloat(n.Num, 'g', -1, 64))
		return nil
	case KindNull:
		buf.WriteString("null")
		return nil
	default:
		return fmt.Errorf("encode: unknown node kind %d", n.Kind)
	}
}

// Decode parses JSON into a tree. Objects become records (field order
// preserved), arrays become lists, and scalars map to their leaf kinds.
// Strings always decode as string leaves; date recovery is a separate pass
// because JSON cannot distinguish the two.
func Decode(r io.Reader) (Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	node, err := decodeValue(dec)
	if err != nil {
		return Node{}, err
	}

	// Reject trailing content after the document.
	if _, err := dec.Token(); err != io.EOF {
		return Node{}, fmt.Errorf("decode: trailing data after document")
	}
	return node, nil
}

func decodeValue(dec *json.Decoder) (Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return Node{}, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Node, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeRecord(dec)
		case '[':
			return decodeList(dec)
		default:
			return Node{}, fmt.Errorf("decode: unexpected delimiter %q", t)
		}
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Node{}, err
		}
		return Number(f), nil
	case nil:
		return Null(), nil
	default:
		return Node{}, fmt.Errorf("decode: unexpected token %v", tok)
	}
}

func decodeRecord(dec *json.Decoder) (Node, error) {
	record := Record()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Node{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Node{}, fmt.Errorf("decode: object key is not a string")
		}
		child, err := decodeValue(dec)
		if err != nil {
			return Node{}, err
		}
		record.Set(key, child)
	}
	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return Node{}, err
	}
	return record, nil
}

func decodeList(dec *json.Decoder) (Node, error) {
	var items []Node
	for dec.More() {
		child, err := decodeValue(dec)
		if err != nil {
			return Node{}, err
		}
		items = append(items, child)
	}
	if _, err := dec.Token(); err != nil {
		return Node{}, err
	}
	return List(items...), nil
}

// ParseDate parses an ISO "YYYY-MM-DD" string into a date value.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
