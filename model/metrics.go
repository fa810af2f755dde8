package model

/*
Metrics is the evaluation result of one training subset at one iteration
*/
type Metrics struct {
	Iteration int
	Loss      float64 // loss the model minimizes (reconstruction error, cost)
	Accuracy  float64 // argmax classification accuracy, 0 when not applicable
}

/*
Score maps train/test metrics of an iteration to a single comparable value,
bigger is better
*/
type Score func(train, test Metrics) float64

/*
AccuracyScore scores an iteration by the test subset accuracy
*/
func AccuracyScore(train, test Metrics) float64 {
	return test.Accuracy
}

/*
LossScore scores an iteration by the negated test subset loss
*/
func LossScore(train, test Metrics) float64 {
	return -test.Loss
}
