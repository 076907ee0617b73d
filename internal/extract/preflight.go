package extract

import (
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PreflightPDF 校验PDF文件结构并返回页数
// 在把文件提交给模型之前先排除损坏的文档
func PreflightPDF(filePath string) (int, error) {
	conf := model.NewDefaultConfiguration()

	if err := api.ValidateFile(filePath, conf); err != nil {
		return 0, WrapError(err, ErrCodeInvalidPDF)
	}

	pages, err := api.PageCountFile(filePath)
	if err != nil {
		return 0, WrapError(err, ErrCodeInvalidPDF)
	}

	if pages == 0 {
		return 0, NewError(ErrCodeInvalidPDF, "pdf has no pages")
	}
	return pages, nil
}
