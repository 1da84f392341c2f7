// ec2search/aws-ec2
// MIT License Copyright(c) 2026 Hiroshi Shimamoto
// vim:set sw=4 sts=4:
//
// aws-ec2 -i <input file> -o <output csv> -r <region> [-p <profile>]
//
// input file: one instance id, private ipv4 or public ipv4 per line
package main

import (
    "context"
    "fmt"
    "os"

    awsconfig "github.com/aws/aws-sdk-go-v2/config"
    "github.com/aws/aws-sdk-go-v2/service/ec2"
    "github.com/aws/aws-sdk-go-v2/service/s3"
    "github.com/aws/aws-sdk-go-v2/service/ssm"
    "github.com/gdamore/tcell"
    "github.com/sirupsen/logrus"
    "github.com/spf13/cobra"

    "github.com/hshimamoto/ec2search/config"
    "github.com/hshimamoto/ec2search/input"
    "github.com/hshimamoto/ec2search/logging"
    "github.com/hshimamoto/ec2search/output"
    "github.com/hshimamoto/ec2search/report"
    "github.com/hshimamoto/ec2search/search"
    "github.com/hshimamoto/ec2search/view"
)

func run(ctx context.Context, s config.Settings, log *logrus.Logger) error {
    tokens, err := input.ReadFile(s.InputFile)
    if err != nil {
	return err
    }
    log.Debugf("%d ip tokens, %d id tokens", len(tokens.IPs), len(tokens.IDs))

    opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(s.Region)}
    if s.Profile != "" {
	opts = append(opts, awsconfig.WithSharedConfigProfile(s.Profile))
    }
    cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
    if err != nil {
	return err
    }

    clients := search.Clients{EC2: ec2.NewFromConfig(cfg)}
    if s.SSM {
	clients.SSM = ssm.NewFromConfig(cfg)
    }
    rep, err := search.Run(ctx, tokens, clients, search.Options{States: s.States, SSM: s.SSM}, log)
    if err != nil {
	return err
    }

    // s3 client only for s3:// destinations
    var s3client output.PutObjectAPI
    if output.IsS3(s.OutputFile) {
	s3client = s3.NewFromConfig(cfg)
    }
    return deliver(ctx, s, rep, s3client, log)
}

var openScreen = view.Open

// deliver writes rep to s.OutputFile and shows it when s.View is set.
// The terminal is opened first so a failure there leaves no output behind.
func deliver(ctx context.Context, s config.Settings, rep report.Report, s3client output.PutObjectAPI, log *logrus.Logger) error {
    data, err := search.Render(rep)
    if err != nil {
	return err
    }
    var screen tcell.Screen
    if s.View {
	screen, err = openScreen()
	if err != nil {
	    return fmt.Errorf("open terminal: %w", err)
	}
	defer screen.Fini()
    }

    log.Infof("writing result to %s", s.OutputFile)
    if err := output.Save(ctx, s.OutputFile, data, s3client); err != nil {
	return err
    }
    log.WithField("rows", len(rep.Rows)).Info("done")

    if screen != nil {
	view.Loop(screen, rep)
    }
    return nil
}

func newCommand() *cobra.Command {
    cmd := &cobra.Command{
	Use:   "aws-ec2",
	Short: "search EC2 instances by id or ipv4 and dump their tags as csv",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
	    s, err := config.FromFlags(cmd.Flags())
	    if err != nil {
		return err
	    }
	    cmd.SilenceUsage = true
	    log, err := logging.New(s.LogLevel, s.LogFormat, os.Stdout)
	    if err != nil {
		return err
	    }
	    return run(cmd.Context(), s, log)
	},
    }
    config.RegisterFlags(cmd.Flags())
    for _, name := range config.Required {
	cobra.CheckErr(cmd.MarkFlagRequired(name))
    }
    return cmd
}

func main() {
    if err := newCommand().ExecuteContext(context.Background()); err != nil {
	os.Exit(1)
    }
}
