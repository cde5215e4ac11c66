// Package cmd defines and implements the CLI commands for the qjobs executable.
//
// Every command shares one App built in the root command's PersistentPreRunE:
//
//	.env file -> viper config -> zap logger -> app.New
//	    transport.NewClient   (request ids, user agent, metrics)
//	    probe.Prober          (colly GET over the candidate health paths)
//	    jobs.Submitter/Lister (POST /submit-job, GET /jobs)
//	    console.Console       (startup and submit-then-refresh)
//
// Commands render through internal/render: text for health, jobs, submit and
// watch; HTML for serve.
package cmd
