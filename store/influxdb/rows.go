package influxdb

import (
	"encoding/json"

	"code.cloudfoundry.org/influxdb-warner/models"

	client "github.com/influxdata/influxdb1-client/v2"
)

// toRows flattens every series into rows keyed by series name. Tags are
// copied into each row; numbers arrive as json.Number and become float64.
func toRows(results []client.Result) map[string][]models.Row {
	rows := make(map[string][]models.Row)
	for _, result := range results {
		for _, series := range result.Series {
			for _, values := range series.Values {
				row := make(models.Row, len(series.Tags)+len(series.Columns))
				for k, v := range series.Tags {
					row[k] = v
				}
				for i, column := range series.Columns {
					if i < len(values) {
						row[column] = toValue(values[i])
					}
				}
				rows[series.Name] = append(rows[series.Name], row)
			}
		}
	}
	return rows
}

func toValue(v interface{}) interface{} {
	if n, ok := v.(json.Number); ok {
		if f, err := n.Float64(); err == nil {
			return f
		}
		return n.String()
	}
	return v
}
