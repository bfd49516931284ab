// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"context"
	"net/url"
	"regexp"
	"strings"
)

const abstractUnavailable = "Abstract not available"

// minAbstractLen filters out fragments that are too short to be a real
// abstract after tag stripping.
const minAbstractLen = 20

var (
	abstractTagPattern = regexp.MustCompile(`(?s)<abstract[^>]*>(.*?)</abstract>`)
	abstractSecPattern = regexp.MustCompile(`(?s)<sec[^>]*sec-type="abstract"[^>]*>(.*?)</sec>`)
	xmlTagPattern      = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern  = regexp.MustCompile(`\s+`)
)

// Abstract retrieves the abstract for one article, trying the abstract
// rettype first, then the full-record XML, then the MEDLINE text format.
// When every source comes up empty it returns "Abstract not available".
func (c *Client) Abstract(ctx context.Context, id string) (string, error) {
	body, err := c.get(ctx, "efetch.fcgi", url.Values{
		"db":      {c.DB()},
		"id":      {id},
		"rettype": {"abstract"},
		"retmode": {"xml"},
	})
	if err != nil {
		return "", err
	}
	if abstract := abstractFromXML(string(body)); abstract != "" {
		return abstract, nil
	}

	if abstract, err := c.abstractFromFullXML(ctx, id); err == nil && abstract != "" {
		return abstract, nil
	}
	if abstract, err := c.abstractFromMedline(ctx, id); err == nil && abstract != "" {
		return abstract, nil
	}
	return abstractUnavailable, nil
}

// abstractFromFullXML fetches the full record XML and looks for abstract
// sections, including the PMC sec-type="abstract" variant.
func (c *Client) abstractFromFullXML(ctx context.Context, id string) (string, error) {
	body, err := c.get(ctx, "efetch.fcgi", url.Values{
		"db":      {c.DB()},
		"id":      {id},
		"rettype": {"full"},
		"retmode": {"xml"},
	})
	if err != nil {
		return "", err
	}

	text := string(body)
	if m := abstractSecPattern.FindStringSubmatch(text); m != nil {
		if abstract := stripXML(m[1]); len(abstract) >= minAbstractLen {
			return abstract, nil
		}
	}
	return abstractFromXML(text), nil
}

// abstractFromMedline fetches the MEDLINE text format and collects the
// "AB  - " field with its continuation lines. PubMed only.
func (c *Client) abstractFromMedline(ctx context.Context, id string) (string, error) {
	if c.DB() != "pubmed" {
		return "", nil
	}

	body, err := c.get(ctx, "efetch.fcgi", url.Values{
		"db":      {"pubmed"},
		"id":      {id},
		"rettype": {"medline"},
		"retmode": {"text"},
	})
	if err != nil {
		return "", err
	}

	var collecting bool
	var parts []string
	for _, line := range strings.Split(string(body), "\n") {
		switch {
		case strings.HasPrefix(line, "AB  - "):
			collecting = true
			parts = append(parts, strings.TrimSpace(strings.TrimPrefix(line, "AB  - ")))
		case collecting && strings.HasPrefix(line, "      "):
			parts = append(parts, strings.TrimSpace(line))
		case collecting:
			collecting = false
		}
	}

	abstract := strings.Join(parts, " ")
	if len(abstract) < minAbstractLen {
		return "", nil
	}
	return abstract, nil
}

// abstractFromXML extracts and cleans the first <abstract> element.
func abstractFromXML(text string) string {
	m := abstractTagPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	abstract := stripXML(m[1])
	if len(abstract) < minAbstractLen {
		return ""
	}
	return abstract
}

// stripXML removes tags and collapses whitespace.
func stripXML(s string) string {
	s = xmlTagPattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}
