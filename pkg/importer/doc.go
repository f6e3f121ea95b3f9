/*
Package importer drives one bulk import of a directory into the document service.

	+-------------+
	|  Importer   |
	| (per run)   |
	+------+------+
	       |
	+------+------+------------+-------------+
	|             |            |             |
	+-----+  +----+----+  +----+----+  +-----+-----+
	|date |  |  tags   |  | upload  |  |  status   |
	|name |  |directory|  |         |  |  report   |
	+-----+  +---------+  +---------+  +-----------+

🎯 Purpose:
- Takes a per-directory session lock so two runs never interleave
- Loads the complete tag listing before any file is touched
- Walks the direct children of the directory one at a time

🔄 Per-file flow:
1. Skip files matching an ignore pattern
2. Rename to "<date> - <suffix><ext>" when enabled; on failure keep the old name
3. Collect tag names from the profile, the request or OS metadata
4. Resolve names to ids, creating unknown tags
5. Upload once
6. Delete the local file only if the service returned a document id

⚡ Guarantees:
- A file is deleted if and only if its upload was confirmed
- One file failing (even by panic) never stops the batch
- A dry run renames, uploads and deletes nothing

🔍 Example:

	im, err := importer.New(importer.Options{
		Tags:     tags.New(client),
		Uploader: upload.New(client),
	})
	report, err := im.Run(ctx, importer.Request{Dir: dir, Profile: profile, Rename: true, Delete: true})
*/
package importer
