// Package arrowexport renders analysis results as Apache Arrow records and
// Arrow IPC streams for downstream tooling.
package arrowexport

import (
	"bytes"
	"fmt"

	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/ipc"
	"github.com/apache/arrow/go/v14/arrow/memory"

	"github.com/consigcody94/golden-ratio-compendium/services/levels"
	"github.com/consigcody94/golden-ratio-compendium/services/phyllotaxis"
)

var pool = memory.NewGoAllocator()

// LevelsRecord flattens an analysis into one record with columns symbol,
// kind, label, ratio, price. Retracements and extensions keep their ratio
// labels; the golden pocket contributes upper, lower, and midpoint rows.
// The caller owns the record.
func LevelsRecord(symbol string, a levels.Analysis) arrow.Record {
	rows := len(a.Retracements) + len(a.Extensions) + 3
	symbols := make([]string, 0, rows)
	kinds := make([]string, 0, rows)
	labels := make([]string, 0, rows)
	ratios := make([]float64, 0, rows)
	prices := make([]float64, 0, rows)

	appendRow := func(kind, label string, ratio, price float64) {
		symbols = append(symbols, symbol)
		kinds = append(kinds, kind)
		labels = append(labels, label)
		ratios = append(ratios, ratio)
		prices = append(prices, price)
	}

	for _, lvl := range a.Retracements {
		appendRow("retracement", lvl.Label, lvl.Ratio.InexactFloat64(), lvl.Price.InexactFloat64())
	}
	for _, lvl := range a.Extensions {
		appendRow("extension", lvl.Label, lvl.Ratio.InexactFloat64(), lvl.Price.InexactFloat64())
	}
	appendRow("pocket", "upper", 0.618, a.Pocket.Upper.InexactFloat64())
	appendRow("pocket", "lower", 0.65, a.Pocket.Lower.InexactFloat64())
	appendRow("pocket", "midpoint", 0.634, a.Pocket.Midpoint.InexactFloat64())

	md := arrow.NewMetadata([]string{"trend"}, []string{a.Trend.String()})
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "symbol", Type: arrow.BinaryTypes.String},
		{Name: "kind", Type: arrow.BinaryTypes.String},
		{Name: "label", Type: arrow.BinaryTypes.String},
		{Name: "ratio", Type: arrow.PrimitiveTypes.Float64},
		{Name: "price", Type: arrow.PrimitiveTypes.Float64},
	}, &md)

	symbolBuilder := array.NewStringBuilder(pool)
	symbolBuilder.AppendValues(symbols, nil)
	symbolArray := symbolBuilder.NewStringArray()

	kindBuilder := array.NewStringBuilder(pool)
	kindBuilder.AppendValues(kinds, nil)
	kindArray := kindBuilder.NewStringArray()

	labelBuilder := array.NewStringBuilder(pool)
	labelBuilder.AppendValues(labels, nil)
	labelArray := labelBuilder.NewStringArray()

	ratioBuilder := array.NewFloat64Builder(pool)
	ratioBuilder.AppendValues(ratios, nil)
	ratioArray := ratioBuilder.NewFloat64Array()

	priceBuilder := array.NewFloat64Builder(pool)
	priceBuilder.AppendValues(prices, nil)
	priceArray := priceBuilder.NewFloat64Array()

	return array.NewRecord(schema, []arrow.Array{
		symbolArray,
		kindArray,
		labelArray,
		ratioArray,
		priceArray,
	}, int64(len(symbols)))
}

// PointsRecord converts a point pattern into a record with columns index,
// x, y. The pattern name travels as schema metadata. The caller owns the
// record.
func PointsRecord(name string, pts []phyllotaxis.Point) arrow.Record {
	indexes := make([]int64, len(pts))
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		indexes[i] = int64(i)
		xs[i] = p.X
		ys[i] = p.Y
	}

	md := arrow.NewMetadata([]string{"pattern"}, []string{name})
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "index", Type: arrow.PrimitiveTypes.Int64},
		{Name: "x", Type: arrow.PrimitiveTypes.Float64},
		{Name: "y", Type: arrow.PrimitiveTypes.Float64},
	}, &md)

	indexBuilder := array.NewInt64Builder(pool)
	indexBuilder.AppendValues(indexes, nil)
	indexArray := indexBuilder.NewInt64Array()

	xBuilder := array.NewFloat64Builder(pool)
	xBuilder.AppendValues(xs, nil)
	xArray := xBuilder.NewFloat64Array()

	yBuilder := array.NewFloat64Builder(pool)
	yBuilder.AppendValues(ys, nil)
	yArray := yBuilder.NewFloat64Array()

	return array.NewRecord(schema, []arrow.Array{indexArray, xArray, yArray}, int64(len(pts)))
}

// SequenceRecord converts sequence terms into a record with columns index,
// value, ratio where ratio is the term divided by its predecessor (zero for
// the first term). The caller owns the record.
func SequenceRecord(terms []uint64) arrow.Record {
	indexes := make([]int64, len(terms))
	values := make([]uint64, len(terms))
	ratios := make([]float64, len(terms))
	for i, v := range terms {
		indexes[i] = int64(i)
		values[i] = v
		if i > 0 && terms[i-1] != 0 {
			ratios[i] = float64(v) / float64(terms[i-1])
		}
	}

	schema := arrow.NewSchema([]arrow.Field{
		{Name: "index", Type: arrow.PrimitiveTypes.Int64},
		{Name: "value", Type: arrow.PrimitiveTypes.Uint64},
		{Name: "ratio", Type: arrow.PrimitiveTypes.Float64},
	}, nil)

	indexBuilder := array.NewInt64Builder(pool)
	indexBuilder.AppendValues(indexes, nil)
	indexArray := indexBuilder.NewInt64Array()

	valueBuilder := array.NewUint64Builder(pool)
	valueBuilder.AppendValues(values, nil)
	valueArray := valueBuilder.NewUint64Array()

	ratioBuilder := array.NewFloat64Builder(pool)
	ratioBuilder.AppendValues(ratios, nil)
	ratioArray := ratioBuilder.NewFloat64Array()

	return array.NewRecord(schema, []arrow.Array{indexArray, valueArray, ratioArray}, int64(len(terms)))
}

// EncodeIPC serializes a record to Arrow IPC stream bytes and releases it.
func EncodeIPC(rec arrow.Record) ([]byte, error) {
	defer rec.Release()

	var buf bytes.Buffer
	writer := ipc.NewWriter(&buf, ipc.WithSchema(rec.Schema()))
	if err := writer.Write(rec); err != nil {
		writer.Close()
		return nil, fmt.Errorf("failed to write Arrow record: %w", err)
	}
	// close before taking bytes so the stream carries its end marker
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close Arrow writer: %w", err)
	}
	return buf.Bytes(), nil
}
