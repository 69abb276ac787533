package cmd

// RunMetrics prints the Prometheus text exposition for the trial.
func RunMetrics(env *Env) error {
	return env.Metrics.WriteText(env.out())
}
