package chart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rxtech-lab/argo-lab/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ChartTestSuite struct {
	suite.Suite
	tempDir string
}

func TestChartSuite(t *testing.T) {
	suite.Run(t, new(ChartTestSuite))
}

func (suite *ChartTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
}

func (suite *ChartTestSuite) TestPlotBalanceWritesPNG() {
	path := filepath.Join(suite.tempDir, "balance.png")
	err := PlotBalance([]float64{10000, 10010, 10000, 9990, 10020}, path)
	suite.Require().NoError(err)

	data, err := os.ReadFile(path)
	suite.Require().NoError(err)
	suite.Greater(len(data), 8)
	suite.Equal([]byte("\x89PNG"), data[:4])
}

func (suite *ChartTestSuite) TestPlotBalanceSingleFlatPoint() {
	path := filepath.Join(suite.tempDir, "flat.png")
	suite.NoError(PlotBalance([]float64{10000}, path))
	suite.FileExists(path)
}

func (suite *ChartTestSuite) TestPlotBalanceEmpty() {
	err := PlotBalance(nil, filepath.Join(suite.tempDir, "empty.png"))
	suite.Error(err)
	suite.True(errors.IsInsufficientDataError(err))
	suite.True(errors.HasCode(err, errors.ErrCodeInsufficientData))
	suite.NoFileExists(filepath.Join(suite.tempDir, "empty.png"))
}

func (suite *ChartTestSuite) TestPlotBalanceUnwritablePath() {
	err := PlotBalance([]float64{1, 2}, filepath.Join(suite.tempDir, "missing", "balance.png"))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeChartRenderFailed))
}

func (suite *ChartTestSuite) TestRenderASCII() {
	out, err := RenderASCII([]float64{10000, 10010, 10000, 9990, 10020}, 5)
	suite.Require().NoError(err)
	suite.Contains(out, Title)
	suite.NotEmpty(out)
}

func (suite *ChartTestSuite) TestRenderASCIIEmpty() {
	_, err := RenderASCII([]float64{}, 5)
	suite.True(errors.IsInsufficientDataError(err))
	suite.Equal(errors.ErrCodeInsufficientData, errors.GetCode(err))
}

func (suite *ChartTestSuite) TestRenderASCIINegativeHeight() {
	_, err := RenderASCII([]float64{1, 2}, -1)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))

	out, err := RenderASCII([]float64{1, 2}, 0)
	suite.NoError(err)
	suite.NotEmpty(out)
}

func (suite *ChartTestSuite) TestPoints() {
	pts := points([]float64{5, 6})
	suite.Len(pts, 2)
	suite.Equal(0.0, pts[0].X)
	suite.Equal(1.0, pts[1].X)
	suite.Equal(6.0, pts[1].Y)
}
