package stats

// ConfusionMatrix counts binary classification outcomes with "stopped" as the
// positive class
type ConfusionMatrix struct {
	TruePositive  int `json:"truePositive"`
	TrueNegative  int `json:"trueNegative"`
	FalsePositive int `json:"falsePositive"`
	FalseNegative int `json:"falseNegative"`
}

// Classification holds the standard binary classification report
type Classification struct {
	Confusion ConfusionMatrix `json:"confusion"`
	Accuracy  float64         `json:"accuracy"`
	Precision float64         `json:"precision"`
	Recall    float64         `json:"recall"`
	F1        float64         `json:"f1"`
	Support   int             `json:"support"`
}

// Evaluate compares predictions against ground-truth labels
func Evaluate(predicted, actual []bool) Classification {
	n := len(predicted)
	if len(actual) < n {
		n = len(actual)
	}

	var cm ConfusionMatrix
	for i := 0; i < n; i++ {
		switch {
		case predicted[i] && actual[i]:
			cm.TruePositive++
		case predicted[i] && !actual[i]:
			cm.FalsePositive++
		case !predicted[i] && actual[i]:
			cm.FalseNegative++
		default:
			cm.TrueNegative++
		}
	}

	report := Classification{Confusion: cm, Support: n}
	if n == 0 {
		return report
	}

	report.Accuracy = float64(cm.TruePositive+cm.TrueNegative) / float64(n)
	if cm.TruePositive+cm.FalsePositive > 0 {
		report.Precision = float64(cm.TruePositive) / float64(cm.TruePositive+cm.FalsePositive)
	}
	if cm.TruePositive+cm.FalseNegative > 0 {
		report.Recall = float64(cm.TruePositive) / float64(cm.TruePositive+cm.FalseNegative)
	}
	if report.Precision+report.Recall > 0 {
		report.F1 = 2 * report.Precision * report.Recall / (report.Precision + report.Recall)
	}
	return report
}
