package github

import (
	"context"
	"fmt"
	"log"
	"strings"

	gh "github.com/google/go-github/v69/github"
	"golang.org/x/sync/errgroup"
)

const requirementsPrefix = "requirements/"

// PRFile is one changed requirements file in a pull request. Content is
// empty for removed files and files whose contents could not be fetched.
type PRFile struct {
	Filename  string
	Status    string
	Additions int
	Deletions int
	Content   string
}

// FetchRequirementsFiles lists the PR's changed files filtered to the
// requirements directory and loads each file's head content. Result order
// follows the PR file listing regardless of fetch completion order.
func (c *Client) FetchRequirementsFiles(ctx context.Context, prNumber int) ([]PRFile, error) {
	changed, _, err := c.api.PullRequests.ListFiles(ctx, c.owner, c.repo, prNumber, &gh.ListOptions{PerPage: 100})
	if err != nil {
		return nil, err
	}

	var files []PRFile
	for _, f := range changed {
		name := f.GetFilename()
		if !strings.HasPrefix(name, requirementsPrefix) || name == requirementsPrefix+".gitkeep" {
			continue
		}
		files = append(files, PRFile{
			Filename:  name,
			Status:    f.GetStatus(),
			Additions: f.GetAdditions(),
			Deletions: f.GetDeletions(),
		})
	}

	ref := fmt.Sprintf("refs/pull/%d/head", prNumber)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i := range files {
		if files[i].Status == "removed" {
			continue
		}
		g.Go(func() error {
			content, err := c.fileContent(gctx, files[i].Filename, ref)
			if err != nil {
				// Content stays empty; the caller skips unreadable files.
				log.Printf("[github] fetch content for %s: %v", files[i].Filename, err)
				return nil
			}
			files[i].Content = content
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return files, nil
}

func (c *Client) fileContent(ctx context.Context, path, ref string) (string, error) {
	fileContent, _, _, err := c.api.Repositories.GetContents(ctx, c.owner, c.repo, path,
		&gh.RepositoryContentGetOptions{Ref: ref})
	if err != nil {
		return "", err
	}
	return fileContent.GetContent()
}
