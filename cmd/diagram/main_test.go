package main

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/suite"
)

type DiagramCmdTestSuite struct {
	suite.Suite
	tempDir string
}

func TestDiagramCmdSuite(t *testing.T) {
	suite.Run(t, new(DiagramCmdTestSuite))
}

func (suite *DiagramCmdTestSuite) SetupTest() {
	if runtime.GOOS == "windows" {
		suite.T().Skip("shell script renderer")
	}

	suite.tempDir = suite.T().TempDir()
}

func (suite *DiagramCmdTestSuite) writeScript(name, body string) string {
	path := filepath.Join(suite.tempDir, name)
	suite.Require().NoError(os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))

	return path
}

func (suite *DiagramCmdTestSuite) run(args ...string) error {
	return newCommand().Run(context.Background(), append([]string{"diagram", "--log-level", "error"}, args...))
}

func (suite *DiagramCmdTestSuite) TestRendersBothDiagrams() {
	graphviz := suite.writeScript("fake-dot", `cp "$4" "$3"`)
	outDir := filepath.Join(suite.tempDir, "out")

	err := suite.run("--graphviz", graphviz, "--output-dir", outDir, "--no-open")
	suite.NoError(err)

	suite.FileExists(filepath.Join(outDir, "interaction_diagram.png"))
	suite.FileExists(filepath.Join(outDir, "collaboration_diagram.png"))
	suite.NoFileExists(filepath.Join(outDir, "interaction_diagram"))
}

func (suite *DiagramCmdTestSuite) TestViewerFailureIsNotFatal() {
	graphviz := suite.writeScript("fake-dot", `cp "$4" "$3"`)
	viewer := suite.writeScript("fake-viewer", "exit 1")

	err := suite.run("--graphviz", graphviz, "--output-dir", suite.tempDir, "--viewer", viewer, "-f", "svg")
	suite.NoError(err)
	suite.FileExists(filepath.Join(suite.tempDir, "interaction_diagram.svg"))
}

func (suite *DiagramCmdTestSuite) TestCancelledContextRendersNothing() {
	graphviz := suite.writeScript("fake-dot", `cp "$4" "$3"`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newCommand().Run(ctx, []string{
		"diagram", "--log-level", "error", "--graphviz", graphviz, "--output-dir", suite.tempDir, "--no-open",
	})
	suite.Error(err)
	suite.NoFileExists(filepath.Join(suite.tempDir, "interaction_diagram.png"))
	suite.NoFileExists(filepath.Join(suite.tempDir, "collaboration_diagram.png"))
}

func (suite *DiagramCmdTestSuite) TestMissingGraphvizFails() {
	err := suite.run("--graphviz", filepath.Join(suite.tempDir, "no-dot"), "--output-dir", suite.tempDir, "--no-open")
	suite.Error(err)
}
