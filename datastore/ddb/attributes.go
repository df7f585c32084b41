/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/slotstore/datastore"
)

// toAttribute converts a canonical record into a DynamoDB attribute value. Timestamps
// become RFC 3339 strings; the item's Kind attribute keeps the distinction at the top
// level.
func toAttribute(v any) (types.AttributeValue, error) {
	switch tv := v.(type) {
	case int64:
		return &types.AttributeValueMemberN{Value: strconv.FormatInt(tv, 10)}, nil
	case float64:
		if math.IsNaN(tv) || math.IsInf(tv, 0) {
			return nil, fmt.Errorf("number %v cannot be stored in DynamoDB", tv)
		}
		return &types.AttributeValueMemberN{Value: strconv.FormatFloat(tv, 'g', -1, 64)}, nil
	case float32:
		f := float64(tv)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("number %v cannot be stored in DynamoDB", tv)
		}
		return &types.AttributeValueMemberN{Value: strconv.FormatFloat(f, 'g', -1, 32)}, nil
	case bool:
		return &types.AttributeValueMemberBOOL{Value: tv}, nil
	case string:
		return &types.AttributeValueMemberS{Value: tv}, nil
	case []byte:
		return &types.AttributeValueMemberB{Value: append([]byte{}, tv...)}, nil
	case time.Time:
		return &types.AttributeValueMemberS{Value: tv.UTC().Format(time.RFC3339Nano)}, nil
	case []any:
		list := make([]types.AttributeValue, len(tv))
		for i, e := range tv {
			av, err := toAttribute(e)
			if err != nil {
				return nil, err
			}
			list[i] = av
		}
		return &types.AttributeValueMemberL{Value: list}, nil
	case map[string]any:
		m := make(map[string]types.AttributeValue, len(tv))
		for k, e := range tv {
			av, err := toAttribute(e)
			if err != nil {
				return nil, err
			}
			m[k] = av
		}
		return &types.AttributeValueMemberM{Value: m}, nil
	}
	return nil, fmt.Errorf("unsupported record value of type %T", v)
}

// fromAttribute converts an item's Value attribute back into a canonical record, using
// kind to restore the number and timestamp types.
func fromAttribute(av types.AttributeValue, kind datastore.Kind) (any, error) {
	switch kind {
	case datastore.KindInteger, datastore.KindDouble, datastore.KindFloat:
		n, ok := av.(*types.AttributeValueMemberN)
		if !ok {
			return nil, fmt.Errorf("%s record is not a number", kind)
		}
		switch kind {
		case datastore.KindInteger:
			return strconv.ParseInt(n.Value, 10, 64)
		case datastore.KindFloat:
			f, err := strconv.ParseFloat(n.Value, 32)
			return float32(f), err
		default:
			return strconv.ParseFloat(n.Value, 64)
		}
	case datastore.KindTimestamp:
		s, ok := av.(*types.AttributeValueMemberS)
		if !ok {
			return nil, fmt.Errorf("timestamp record is not a string")
		}
		return time.Parse(time.RFC3339Nano, s.Value)
	}
	return nestedValue(av)
}

// nestedValue decodes an attribute without a declared kind. Integral numbers come back
// as int64 and everything else as float64.
func nestedValue(av types.AttributeValue) (any, error) {
	switch tv := av.(type) {
	case *types.AttributeValueMemberN:
		if i, err := strconv.ParseInt(tv.Value, 10, 64); err == nil {
			return i, nil
		}
		return strconv.ParseFloat(tv.Value, 64)
	case *types.AttributeValueMemberS:
		return tv.Value, nil
	case *types.AttributeValueMemberBOOL:
		return tv.Value, nil
	case *types.AttributeValueMemberB:
		return append([]byte{}, tv.Value...), nil
	case *types.AttributeValueMemberL:
		list := make([]any, len(tv.Value))
		for i, e := range tv.Value {
			v, err := nestedValue(e)
			if err != nil {
				return nil, err
			}
			list[i] = v
		}
		return list, nil
	case *types.AttributeValueMemberM:
		m := make(map[string]any, len(tv.Value))
		for k, e := range tv.Value {
			v, err := nestedValue(e)
			if err != nil {
				return nil, err
			}
			m[k] = v
		}
		return m, nil
	}
	return nil, fmt.Errorf("unsupported attribute type %T", av)
}
