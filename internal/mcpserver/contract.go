package mcpserver

// RecipeFormatConventions describes the filename and frontmatter conventions
// that the library uses to discover recipes, images, and cross-references.
const RecipeFormatConventions = `# Recipe Library Conventions

The library discovers documents purely by filename convention; it never
parses recipe bodies.

## Documents

- Recipes end with ` + "`.cook`" + `, menus with ` + "`.menu`" + `.
- An optional YAML frontmatter block may open the file:

` + "```" + `
---
title: Fluffy Pancakes       # display name (falls back to the file stem)
servings: 4
tags: [breakfast, easy]      # or a comma-separated string
image: https://example/p.jpg # or images / picture / pictures
---

Mix @flour{200%g} with @milk{300%ml}...
` + "```" + `

  The block may span at most 30 lines between the delimiters. Malformed
  frontmatter is ignored, never an error.

## Images

Accepted extensions in priority order: jpg, jpeg, png, webp.

- Title image: a sibling file with the recipe's stem, e.g.
  ` + "`Pancakes.jpg`" + ` next to ` + "`Pancakes.cook`" + `.
- Step images: ` + "`<stem>.<step>.<ext>`" + ` for linear recipes, or
  ` + "`<stem>.<section>.<step>.<ext>`" + ` for sectioned ones. Section and
  step numbers start at 1.

## Cross-references

A recipe may reference another document as an ingredient:

` + "```" + `
Serve with @./sauces/Hollandaise{150%ml} on top.
` + "```" + `

The path must start with ` + "`./`" + ` or ` + "`../`" + `, resolves relative
to the referencing file, and gets ` + "`.cook`" + ` appended when it carries
no extension. The related-files listing follows these references
transitively, images included, and tolerates cycles.
`
