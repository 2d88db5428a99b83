package services

import (
	"regexp"
	"strings"

	"github.com/alimgiray/contribution-analyzer/internal/models"
)

type classificationRule struct {
	changeType models.ChangeType
	patterns   []*regexp.Regexp
}

// Keyword families are matched as substrings of the lower-cased message, in order
var messageRules = []classificationRule{
	{models.ChangeTypeBugfix, []*regexp.Regexp{regexp.MustCompile(`fix|bug|patch|resolve`)}},
	{models.ChangeTypeFeature, []*regexp.Regexp{regexp.MustCompile(`feat|feature|add|implement`)}},
	{models.ChangeTypeRefactor, []*regexp.Regexp{regexp.MustCompile(`refactor|cleanup`)}},
	{models.ChangeTypeDocs, []*regexp.Regexp{regexp.MustCompile(`docs?|readme`)}},
	{models.ChangeTypeTest, []*regexp.Regexp{regexp.MustCompile(`test|spec|jest|cypress`)}},
	{models.ChangeTypeChore, []*regexp.Regexp{regexp.MustCompile(`chore|bump|deps|ci|build`)}},
}

// Every path is checked against a rule before moving on to the next one
var fileRules = []classificationRule{
	{models.ChangeTypeDocs, []*regexp.Regexp{
		regexp.MustCompile(`(^|/)docs?/`),
		regexp.MustCompile(`readme|\.mdx?$|\.rst$|\.txt$`),
	}},
	{models.ChangeTypeTest, []*regexp.Regexp{
		regexp.MustCompile(`__tests__|(^|/)tests?/|\.test\.|\.spec\.`),
	}},
	{models.ChangeTypeFeature, []*regexp.Regexp{
		regexp.MustCompile(`(^|/)(src|app|lib|components|pages)/`),
	}},
	{models.ChangeTypeChore, []*regexp.Regexp{
		regexp.MustCompile(`(^|/)\.github/|package(-lock)?\.json$|yarn\.lock$|pnpm-lock\.yaml$|\.rc$|config|tsconfig\.json$`),
	}},
}

// ClassifierService assigns a change type to a commit from its message and changed files
type ClassifierService struct{}

func NewClassifierService() *ClassifierService {
	return &ClassifierService{}
}

// Classify resolves the change type of a commit. The message label wins unless
// the file label has strictly higher precedence
func (s *ClassifierService) Classify(message string, files []string) models.ChangeType {
	return ChooseChangeType(s.ClassifyMessage(message), s.ClassifyFiles(files))
}

// ClassifyMessage labels a commit from its message alone
func (s *ClassifierService) ClassifyMessage(message string) models.ChangeType {
	m := strings.ToLower(message)
	for _, rule := range messageRules {
		for _, re := range rule.patterns {
			if re.MatchString(m) {
				return rule.changeType
			}
		}
	}
	return models.ChangeTypeGeneral
}

// ClassifyFiles labels a commit from its changed paths, no paths yields general
func (s *ClassifierService) ClassifyFiles(files []string) models.ChangeType {
	if len(files) == 0 {
		return models.ChangeTypeGeneral
	}

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = strings.ToLower(f)
	}

	for _, rule := range fileRules {
		for _, re := range rule.patterns {
			if anyPathMatches(paths, re) {
				return rule.changeType
			}
		}
	}
	return models.ChangeTypeGeneral
}

// ChooseChangeType picks between the message and file labels; ties favor the message
func ChooseChangeType(messageType, fileType models.ChangeType) models.ChangeType {
	if fileType.Precedence() > messageType.Precedence() {
		return fileType
	}
	return messageType
}

func anyPathMatches(paths []string, re *regexp.Regexp) bool {
	for _, p := range paths {
		if re.MatchString(p) {
			return true
		}
	}
	return false
}
