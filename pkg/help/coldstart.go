package help

// Quickstart is shown as the CLI description.
const Quickstart = `Renders the token frequencies of a text file as a square grayscale PNG.
One pixel per distinct token, ordered by token length, brighter = more frequent.

examples:
  basic: |
    book-fingerprint moby.txt                      # writes output.png

  bigger_pixels: |
    book-fingerprint -o moby.png --scale 8 moby.txt

  fast_tokenizer: |
    book-fingerprint --tokenizer simple moby.txt

  keep_history: |
    book-fingerprint --database runs.db --manifest moby.txt
    book-fingerprint runs --database runs.db
    book-fingerprint show --database runs.db 3

  config_file: |
    book-fingerprint --config fingerprint.yaml moby.txt
`
